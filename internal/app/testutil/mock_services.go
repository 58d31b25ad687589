package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/app/api/analysis"
	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/app/generator"
	"habla-jungla/internal/app/pipeline"
)

// MockServices contains all mock services for handler tests
type MockServices struct {
	TranslationService *MockTranslationService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranslationService: NewMockTranslationService(t),
	}
}

// MockTranslationService is a mock implementation of TranslationService
type MockTranslationService struct {
	mock.Mock
}

func NewMockTranslationService(t *testing.T) *MockTranslationService {
	m := &MockTranslationService{}
	m.Test(t)
	return m
}

func (m *MockTranslationService) Translate(ctx context.Context, clip audio.Clip, withAnalysis bool) (*dto.TranslationResponse, error) {
	args := m.Called(ctx, clip, withAnalysis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranslationResponse), args.Error(1)
}

func (m *MockTranslationService) Speak(ctx context.Context, req *dto.CreateUtteranceRequest) (*dto.UtteranceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UtteranceResponse), args.Error(1)
}

func (m *MockTranslationService) Analyze(ctx context.Context, data []byte) *dto.AnalysisResponse {
	args := m.Called(ctx, data)
	return args.Get(0).(*dto.AnalysisResponse)
}

func (m *MockTranslationService) Labels(ctx context.Context) *dto.LabelsResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.LabelsResponse)
}

func (m *MockTranslationService) Config(ctx context.Context) *dto.ConfigResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.ConfigResponse)
}

// MockTranslator is a mock of the loaded pipeline
type MockTranslator struct {
	mock.Mock
}

func NewMockTranslator(t *testing.T) *MockTranslator {
	m := &MockTranslator{}
	m.Test(t)
	return m
}

func (m *MockTranslator) Translate(ctx context.Context, clip audio.Clip) (*pipeline.Translation, error) {
	args := m.Called(ctx, clip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Translation), args.Error(1)
}

func (m *MockTranslator) Speak(ctx context.Context, label classifier.Label) (generator.Utterance, error) {
	args := m.Called(ctx, label)
	return args.Get(0).(generator.Utterance), args.Error(1)
}

func (m *MockTranslator) Constants() pipeline.Constants {
	args := m.Called()
	return args.Get(0).(pipeline.Constants)
}

// MockAnalyzer is a mock remote analysis client
type MockAnalyzer struct {
	mock.Mock
}

func NewMockAnalyzer(t *testing.T) *MockAnalyzer {
	m := &MockAnalyzer{}
	m.Test(t)
	return m
}

func (m *MockAnalyzer) Analyze(ctx context.Context, data []byte) *analysis.Result {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*analysis.Result)
}
