package models

// Vocabulary names the controlled classification scheme a taxonomy term
// belongs to. The BC211 source encodes three facets (what service, who it's
// for, why it's needed) in a single free-text column, distinguishable only by
// orthographic convention; AIRS-coded columns carry the fourth.
const (
	VocabularyWhat = "bc211-what"
	VocabularyWho  = "bc211-who"
	VocabularyWhy  = "bc211-why"
	VocabularyAIRS = "AIRS"
)

// TaxonomyTerm ids are content-addressed from (name, vocabulary), making terms
// idempotent across rows and across import runs. Parent fields are reserved;
// the BC211 export never populates them.
type TaxonomyTerm struct {
	ID         string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Vocabulary string  `json:"vocabulary" db:"vocabulary"`
	ParentID   *string `json:"parent_id,omitempty" db:"parent_id"`
	ParentName *string `json:"parent_name,omitempty" db:"parent_name"`
}

// ServiceTaxonomyTerm links a service to a taxonomy term. One per
// (service, term) pair; freshly derived for every service record.
type ServiceTaxonomyTerm struct {
	ID             string `json:"id" db:"id"`
	ServiceID      string `json:"service_id" db:"service_id"`
	TaxonomyTermID string `json:"taxonomy_term_id" db:"taxonomy_term_id"`
	TaxonomyDetail string `json:"taxonomy_detail" db:"taxonomy_detail"`
}
