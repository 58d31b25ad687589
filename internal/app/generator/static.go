package generator

import "context"

func init() {
	RegisterBackend("static", func(settings map[string]interface{}) (Backend, error) {
		return NewStaticBackend(StringSetting(settings, "text", "...")), nil
	})
}

// StaticBackend always continues with the same text. It keeps the service
// usable without a language model.
type StaticBackend struct {
	text string
}

// NewStaticBackend returns a backend that completes every prompt with text.
func NewStaticBackend(text string) *StaticBackend {
	return &StaticBackend{text: text}
}

func (b *StaticBackend) Name() string {
	return "static"
}

func (b *StaticBackend) Complete(ctx context.Context, _ Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.text, nil
}
