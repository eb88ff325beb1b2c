package loam

// ElementMetadata is the frontmatter of a page document.
// The document body is the description of the element.
type ElementMetadata struct {
	ID          string            `json:"id" mapstructure:"id"`
	Step        int               `json:"step" mapstructure:"step"`
	Order       int               `json:"order" mapstructure:"order"`
	Markers     []string          `json:"markers" mapstructure:"markers"`
	Annotations map[string]string `json:"annotations" mapstructure:"annotations"`
	Rect        any               `json:"rect" mapstructure:"rect"`
}
