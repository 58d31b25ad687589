package handlers

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"habla-jungla/internal/api/errors"
	"habla-jungla/internal/api/middleware"
	"habla-jungla/internal/app/audio"
)

// errNoAudio means none of the expected multipart fields was present
func errNoAudio() *errors.APIError {
	return errors.NewBadRequestError("No audio file provided")
}

// readClip reads the first multipart file found under fields
func readClip(c *gin.Context, fields ...string) (audio.Clip, error) {
	for _, field := range fields {
		file, header, err := c.Request.FormFile(field)
		if err != nil {
			if middleware.IsTooLarge(err) {
				return audio.Clip{}, errors.NewTooLargeError("Upload too large")
			}
			if stderrors.Is(err, http.ErrMissingFile) || stderrors.Is(err, http.ErrNotMultipart) {
				continue
			}
			return audio.Clip{}, errors.NewBadRequestError("Invalid multipart upload")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			if middleware.IsTooLarge(err) {
				return audio.Clip{}, errors.NewTooLargeError("Upload too large")
			}
			return audio.Clip{}, errors.NewBadRequestError("Failed to read uploaded file")
		}

		clip := audio.Clip{
			Data:        data,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
		if audio.Sniff(clip) == audio.FormatUnknown && audio.IsPCMFile(header.Filename) {
			clip.ContentType = audio.PCMContentType
		}
		// headerless pcm may declare its layout in form fields
		clip.SampleRate, _ = strconv.Atoi(c.Request.FormValue("sample_rate"))
		clip.Channels, _ = strconv.Atoi(c.Request.FormValue("channels"))
		return clip, nil
	}
	return audio.Clip{}, errNoAudio()
}
