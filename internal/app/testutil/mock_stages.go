package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/app/features"
	"habla-jungla/internal/app/generator"
)

// MockExtractor is a mock feature extractor
type MockExtractor struct {
	mock.Mock
}

func NewMockExtractor(t *testing.T) *MockExtractor {
	m := &MockExtractor{}
	m.Test(t)
	return m
}

func (m *MockExtractor) Extract(ctx context.Context, clip audio.Clip) (features.Matrix, error) {
	args := m.Called(ctx, clip)
	return args.Get(0).(features.Matrix), args.Error(1)
}

// MockClassifier is a mock species classifier
type MockClassifier struct {
	mock.Mock
}

func NewMockClassifier(t *testing.T) *MockClassifier {
	m := &MockClassifier{}
	m.Test(t)
	return m
}

func (m *MockClassifier) Classify(ctx context.Context, matrix features.Matrix) classifier.Result {
	args := m.Called(ctx, matrix)
	return args.Get(0).(classifier.Result)
}

// MockGenerator is a mock utterance generator
type MockGenerator struct {
	mock.Mock
}

func NewMockGenerator(t *testing.T) *MockGenerator {
	m := &MockGenerator{}
	m.Test(t)
	return m
}

func (m *MockGenerator) Generate(ctx context.Context, label classifier.Label) (generator.Utterance, error) {
	args := m.Called(ctx, label)
	return args.Get(0).(generator.Utterance), args.Error(1)
}
