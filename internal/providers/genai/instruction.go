package genai

import (
	"fmt"
	"strings"

	"lumina/internal/domain"
)

// apiAspectRatio maps a framing ratio onto the token accepted by the image
// model. The external enumeration has no 4:5; it is remapped to 3:4. All
// other ratios pass through unchanged.
func apiAspectRatio(ratio domain.FramingRatio) string {
	if ratio == domain.FramingFeed {
		return "3:4"
	}
	return string(ratio)
}

func translateAll(classifications []domain.Classification) []string {
	out := make([]string, 0, len(classifications))
	for _, c := range classifications {
		out = append(out, domain.TranslateClassification(c))
	}
	return out
}

func localeName(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), "pt") {
		return "Portuguese"
	}
	return "English"
}

// buildComposeInstruction assembles the instruction sent to the text model
// when composing an editorial prompt.
func buildComposeInstruction(req ComposeRequest) string {
	products := strings.Join(translateAll(req.Classifications), ", ")

	banner := ""
	if req.Settings.Framing == domain.FramingBanner {
		banner = fmt.Sprintf(`LAYOUT: Horizontal High-End Commercial Banner.
COMPOSITION: Professional advertisement photography layout. The model must be in a sophisticated pose specifically designed to showcase and highlight the %s.
FOCUS: Poses should be elegant (e.g., hand near face for rings/earrings, neck elongated for necklaces).
STRICT RULE: Absolutely NO TEXT, NO LOGOS, NO GRAPHICS. Pure photography.`, products)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a hyper-realistic high-end commercial photography prompt for jewelry.\n")
	fmt.Fprintf(&b, "Product: %s.\n", products)
	fmt.Fprintf(&b, "Model Details: %s, %s, %s.\n", req.Settings.Gender, req.Settings.Ethnicity, req.Settings.AgeRange)
	fmt.Fprintf(&b, "Style: %s.\n", req.Settings.EditorialStyle)
	fmt.Fprintf(&b, "Context: %s\n", req.ExtraContext)
	if banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString(`Requirements:
1. Luxury magazine editorial style (Vogue/Cartier style).
2. Focus on the physical jewelry pieces with macro detail and perfect focus.
3. Ensure jewelry fits the body perfectly (rings snugly on fingers, necklaces following neck contours).
4. Soft professional studio lighting that highlights metal luster and gemstone brilliance.
5. High-fidelity craftsmanship preservation.
6. Extremely clean composition, no watermarks, no text.
`)
	fmt.Fprintf(&b, "\nCRITICAL: The final response must be written in %s.\n", localeName(req.Locale))
	b.WriteString("The response must be only the prompt text.")
	return b.String()
}

// buildImageInstruction assembles the trailing instruction part of an image
// synthesis request. The caller-supplied prompt is embedded between the
// retouching rules and the closing constraint.
func buildImageInstruction(prompt string, classifications []domain.Classification) string {
	products := strings.Join(translateAll(classifications), ", ")

	var b strings.Builder
	b.WriteString(`ULTRA-PREMIUM RETOUCHING & COMPOSITION:
1. ABSOLUTE FIDELITY: Use the provided jewelry images as the ONLY reference. Keep every stone and curve identical.
2. SEAMLESS INTEGRATION: The jewelry must look physically present on the skin. Natural shadows, realistic skin pressure, and perfect reflections of the environment on the metal.
3. HIGH-END FINISH: 8k resolution look, professional color grading.
`)
	fmt.Fprintf(&b, "4. ADVERTISEMENT FOR: %s.\n", products)
	b.WriteString(prompt)
	b.WriteString("\n\nNO LOGOS, NO TEXT. The final image must be indistinguishable from a real luxury photograph.")
	return b.String()
}

// buildVideoInstruction wraps the image prompt in the cinematic-motion
// directive used for video synthesis.
func buildVideoInstruction(prompt string) string {
	return fmt.Sprintf("Cinematic high-end jewelry commercial. Slow macro panning and gentle bokeh shifts. Focus on the glimmer of the jewels. Elegant movements. %s. No text.", prompt)
}
