// Package prompt builds the analysis prompts sent to inference providers and
// parses the score lines out of their replies.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/voicehub/voicehub/pkg/models"
)

// SystemPrompt frames every analysis request. Providers that support a
// dedicated system role receive it there; others get it prepended.
const SystemPrompt = `You are a brand voice analysis report generator. Create a comprehensive, well-structured report judging the given content against the given brand voice.

REPORT STRUCTURE:
**1. Executive Summary**: Brief overview of the analysis and key findings
**2. Overall Scores**: Present all scores as "<name> score: <value>" lines, with values between 0 and 1. Required score names: overall, personality, tonality, dos, donts
**3. Key Issues**: Highlight the most significant issues, one "- **Title**: detail" bullet per issue
**4. Improvement Suggestions**: Present the top suggestions, one "- **Title**: detail" bullet per suggestion
**5. Detailed Analysis**: Provide a section-by-section breakdown of the content

FORMAT INSTRUCTIONS:
- Use clear, concise language
- Include specific examples from the content
- Make the report actionable for the content creator`

// Analysis renders the user-turn prompt for analyzing content against a voice.
func Analysis(voice models.BrandVoice, content string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BRAND VOICE: %s\n", voice.Name)
	if voice.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", voice.Description)
	}
	if voice.VoiceMetadata.Personality != "" {
		fmt.Fprintf(&b, "Personality: %s\n", voice.VoiceMetadata.Personality)
	}
	if voice.VoiceMetadata.Tonality != "" {
		fmt.Fprintf(&b, "Tonality: %s\n", voice.VoiceMetadata.Tonality)
	}
	if voice.Dos != "" {
		fmt.Fprintf(&b, "Dos: %s\n", voice.Dos)
	}
	if voice.Donts != "" {
		fmt.Fprintf(&b, "Don'ts: %s\n", voice.Donts)
	}
	fmt.Fprintf(&b, "\nCONTENT TO ANALYZE:\n%s\n", content)
	return b.String()
}

var reScoreLine = regexp.MustCompile(`(?i)\b(overall|personality|tonality|dos|don'?ts)(?:\s+score)?\s*[:=]?\s*([0-9]+(?:\.[0-9]+)?)`)

// ParseScores extracts alignment scores from free-form report text. Values on
// 0-10 or 0-100 scales are normalized to [0, 1]. A score the text omits is
// filled with the mean of the scores found, or 0.5 when none were found.
func ParseScores(text string) models.AlignmentScores {
	found := map[string]float64{}

	for _, line := range strings.Split(text, "\n") {
		m := reScoreLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.ReplaceAll(strings.ToLower(m[1]), "'", "")
		if _, ok := found[name]; ok {
			continue
		}
		var value float64
		fmt.Sscanf(m[2], "%f", &value)
		found[name] = normalize(value)
	}

	fallback := 0.5
	if len(found) > 0 {
		var sum float64
		for _, v := range found {
			sum += v
		}
		fallback = sum / float64(len(found))
	}

	get := func(name string) float64 {
		if v, ok := found[name]; ok {
			return v
		}
		return fallback
	}

	return models.AlignmentScores{
		Overall:     get("overall"),
		Personality: get("personality"),
		Tonality:    get("tonality"),
		Dos:         get("dos"),
		Donts:       get("donts"),
	}
}

// normalize maps 0-10 and 0-100 scale values onto [0, 1] and clamps.
func normalize(v float64) float64 {
	switch {
	case v > 10 && v <= 100:
		v /= 100
	case v > 1 && v <= 10:
		v /= 10
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
