package domain

import "time"

// Classification enumerates the closed set of jewelry categories a source
// asset may carry. Values match the product vocabulary of the studio UI.
type Classification string

const (
	ClassificationNone     Classification = ""
	ClassificationRing     Classification = "Anel"
	ClassificationBracelet Classification = "Pulseira"
	ClassificationNecklace Classification = "Colar"
	ClassificationEarrings Classification = "Brincos"
)

var classificationTranslation = map[Classification]string{
	ClassificationRing:     "Ring",
	ClassificationBracelet: "Bracelet",
	ClassificationNecklace: "Necklace",
	ClassificationEarrings: "Earrings",
}

// TranslateClassification maps an internal classification onto the
// external-facing English noun embedded in generation instructions. Unmapped
// values pass through unchanged.
func TranslateClassification(c Classification) string {
	if english, ok := classificationTranslation[c]; ok {
		return english
	}
	return string(c)
}

// KnownClassification reports whether c names a member of the closed set.
func KnownClassification(c Classification) bool {
	_, ok := classificationTranslation[c]
	return ok
}

// SourceAsset is an uploaded jewelry photograph held by a session's asset
// collection. Data carries the decoded image bytes; classification starts
// empty and must be assigned before a generation request may be issued.
type SourceAsset struct {
	ID             string
	Filename       string
	MIME           string
	Data           []byte
	Classification Classification
	CreatedAt      time.Time
}
