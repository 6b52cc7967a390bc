package loam

// ArticleMetadata is the frontmatter of an article file.
//
//	---
//	id: cloud-costs
//	title: Cutting Cloud Costs
//	meta:
//	  description: Practical levers for FinOps teams.
//	---
//	Article body in Markdown...
type ArticleMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Meta        struct {
		Description string `json:"description" mapstructure:"description"`
	} `json:"meta" mapstructure:"meta"`
	Tags []string `json:"tags" mapstructure:"tags"`
}

// MetaDescription prefers meta.description over the top-level description.
func (m ArticleMetadata) MetaDescription() string {
	if m.Meta.Description != "" {
		return m.Meta.Description
	}
	return m.Description
}
