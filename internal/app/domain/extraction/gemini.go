package extraction

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

// DefaultModel is used when GEMINI_MODEL is unset.
const DefaultModel = "gemini-3-flash-preview"

const extractionPrompt = `
제공된 여행 일정 캡처 이미지들을 정밀하게 분석하여 통합된 여행 계획 JSON을 생성해주세요.

[핵심 미션]
1. 일정에 먹는 장소(맛집, 카페)가 많을 경우, 그 사이에 칼로리를 소모할 수 있는 주변 '활동(Activity)' 장소(산책로, 공원, 오름, 등산로 등)를 적극적으로 추천하여 일정에 끼워 넣어주세요.
2. 공항(AIRPORT)과 메인 숙소(ACCOMMODATION)는 이미지 내용을 바탕으로 자동 추출하여 카테고리를 정확히 지정해주세요.
3. 각 장소의 정확한 좌표(lat, lng)를 포함하세요. 거리 계산에 필수입니다.

[데이터 요구사항]
- 언어: 한국어
- 카테고리 분류: RESTAURANT(맛집), CAFE(카페), SIGHT(명소), ACCOMMODATION(숙소), AIRPORT(공항), TRANSPORT(이동), ACTIVITY(활동), OTHER(기타).
- 활동(ACTIVITY) 카테고리: 칼로리 소모가 가능한 산책, 등산 등의 추천 장소.
- 고유 ID (id: 랜덤 문자열).
- 구조: 'days' 배열(날짜별)과 'unscheduledItems' 배열(보관용).

이미지에 텍스트가 작거나 흐릿해도 문맥을 파악해 최선을 다해 장소명을 복원해주세요.
`

// Extractor turns screenshots into the raw JSON payload of an itinerary.
type Extractor interface {
	Extract(ctx context.Context, images []Image) (string, error)
}

// GeminiExtractor calls the Gemini multimodal API with a JSON response schema.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates a Gemini API client. An empty key is an error.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// Extract sends every image followed by the prompt as a single user turn.
func (g *GeminiExtractor) Extract(ctx context.Context, images []Image) (string, error) {
	ctx, span := otel.Tracer("GeminiExtractor").Start(ctx, "Extract", trace.WithAttributes(
		attribute.String("model", g.model),
		attribute.Int("images.count", len(images)),
	))
	defer span.End()

	parts := make([]*genai.Part, 0, len(images)+1)
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(extractionPrompt))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   itinerarySchema(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Itinerary extracted")
	return text, nil
}

func itinerarySchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	num := &genai.Schema{Type: genai.TypeNumber}

	item := func(withTime bool) *genai.Schema {
		props := map[string]*genai.Schema{
			"id":       str,
			"location": str,
			"category": str,
			"memo":     str,
			"lat":      num,
			"lng":      num,
		}
		if withTime {
			props["time"] = str
		}
		return &genai.Schema{Type: genai.TypeObject, Properties: props}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": str,
			"days": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"dayNumber": {Type: genai.TypeInteger},
						"date":      str,
						"title":     str,
						"theme":     str,
						"items":     {Type: genai.TypeArray, Items: item(true)},
					},
				},
			},
			"unscheduledItems": {Type: genai.TypeArray, Items: item(false)},
		},
		Required: []string{"days"},
	}
}

// Unavailable is used when no API key is configured; every call fails.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Extract(context.Context, []Image) (string, error) {
	return "", fmt.Errorf("extraction unavailable: %s", u.Reason)
}
