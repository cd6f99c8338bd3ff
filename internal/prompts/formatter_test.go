package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleTemplate(systemPrompt string) *Template {
	return &Template{
		Key: "test",
		CommunityStyle: CommunityStyle{
			Core:              "핫딜 공유 글",
			Tone:              "반말 혼용체",
			Characteristics:   []string{"가격 중심", "짧은 문장"},
			ProfessionalTerms: true,
		},
		SystemPrompt: systemPrompt,
	}
}

func TestFormatSubstitutesRequestAndStyle(t *testing.T) {
	tmpl := styleTemplate("{coreMessage}\n톤: {tone}\n특성: {characteristics}\n{professionalTerms}\n상품: {productName} / {price}\n행사: {event}")

	out, err := Format(tmpl, FormatRequest{
		ProductName: "유기농 기저귀",
		Price:       "29,900원",
		Event:       "1+1",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "핫딜 공유 글")
	assert.Contains(t, out, "톤: 반말 혼용체")
	assert.Contains(t, out, "특성: 가격 중심, 짧은 문장")
	assert.Contains(t, out, "전문용어 사용")
	assert.Contains(t, out, "상품: 유기농 기저귀 / 29,900원")
	assert.Contains(t, out, "행사: 1+1")
}

func TestFormatAbsentFieldsBecomeEmpty(t *testing.T) {
	tmpl := styleTemplate("행사: {event}\n쿠폰: {coupon}\n사유: {regenerateReason}")

	out, err := Format(tmpl, FormatRequest{})
	require.NoError(t, err)
	assert.Equal(t, "행사: \n쿠폰: \n사유: ", out)
}

func TestFormatSerializesPreviousContents(t *testing.T) {
	tmpl := styleTemplate("이전 결과: {previousContents}")

	out, err := Format(tmpl, FormatRequest{
		PreviousContents: []PreviousContent{
			{ID: 1, Tone: "후기형", Text: "애들 <완전> 좋아해요"},
			{ID: 2, Tone: "친근한 톤", Text: "두 번째 글"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `"tone":"후기형"`)
	// HTML escaping is off so angle brackets survive verbatim.
	assert.Contains(t, out, "<완전>")
	assert.Contains(t, out, `"id":2`)
}

func TestFormatEmptyPreviousContents(t *testing.T) {
	tmpl := styleTemplate("이전 결과: {previousContents}")

	out, err := Format(tmpl, FormatRequest{})
	require.NoError(t, err)
	assert.Equal(t, "이전 결과: ", out)
}

func TestFormatUnescapesDoubledBraces(t *testing.T) {
	tmpl := styleTemplate(`형식: {{"information": {{"content": "본문"}}}}`)

	out, err := Format(tmpl, FormatRequest{})
	require.NoError(t, err)
	assert.Equal(t, `형식: {"information": {"content": "본문"}}`, out)
}

func TestFormatUnknownVariable(t *testing.T) {
	tmpl := styleTemplate("값: {mysteryValue}")

	_, err := Format(tmpl, FormatRequest{})
	require.ErrorIs(t, err, ErrTemplateVariableMissing)
}

func TestExtractPlaceholders(t *testing.T) {
	names, err := extractPlaceholders("{productName} {price} {productName} {{literal}}")
	require.NoError(t, err)
	assert.Equal(t, []string{"productName", "price"}, names)
}

func TestExtractPlaceholdersSyntaxErrors(t *testing.T) {
	_, err := extractPlaceholders("깨진 {placeholder")
	require.Error(t, err)

	_, err = extractPlaceholders("깨진 } 중괄호")
	require.Error(t, err)

	_, err = extractPlaceholders("{invalid name}")
	require.Error(t, err)
}
