package vdom

// Tag identifies an element kind.
type Tag string

// Document structure elements
const (
	TagHTML  Tag = "html"
	TagHead  Tag = "head"
	TagBody  Tag = "body"
	TagTitle Tag = "title"
	TagMeta  Tag = "meta"
	TagLink  Tag = "link"
	TagBase  Tag = "base"
	TagStyle Tag = "style"
)

// Content sectioning elements
const (
	TagHeader  Tag = "header"
	TagFooter  Tag = "footer"
	TagMain    Tag = "main"
	TagNav     Tag = "nav"
	TagSection Tag = "section"
	TagArticle Tag = "article"
	TagAside   Tag = "aside"
	TagH1      Tag = "h1"
	TagH2      Tag = "h2"
	TagH3      Tag = "h3"
	TagH4      Tag = "h4"
	TagH5      Tag = "h5"
	TagH6      Tag = "h6"
)

// Text content elements
const (
	TagDiv        Tag = "div"
	TagP          Tag = "p"
	TagSpan       Tag = "span"
	TagPre        Tag = "pre"
	TagBlockquote Tag = "blockquote"
	TagUl         Tag = "ul"
	TagOl         Tag = "ol"
	TagLi         Tag = "li"
	TagDl         Tag = "dl"
	TagDt         Tag = "dt"
	TagDd         Tag = "dd"
	TagHr         Tag = "hr"
	TagFigure     Tag = "figure"
)

// Inline text semantics
const (
	TagA      Tag = "a"
	TagStrong Tag = "strong"
	TagEm     Tag = "em"
	TagCode   Tag = "code"
	TagSmall  Tag = "small"
	TagBr     Tag = "br"
	TagLabel  Tag = "label"
)

// Embedded content and tables
const (
	TagImg   Tag = "img"
	TagTable Tag = "table"
	TagThead Tag = "thead"
	TagTbody Tag = "tbody"
	TagTr    Tag = "tr"
	TagTh    Tag = "th"
	TagTd    Tag = "td"
)

// Form elements
const (
	TagForm     Tag = "form"
	TagInput    Tag = "input"
	TagButton   Tag = "button"
	TagSelect   Tag = "select"
	TagOption   Tag = "option"
	TagTextarea Tag = "textarea"
	TagFieldset Tag = "fieldset"
	TagLegend   Tag = "legend"
)

// knownTags is the closed set of element kinds.
var knownTags = map[Tag]bool{
	TagHTML: true, TagHead: true, TagBody: true, TagTitle: true, TagMeta: true,
	TagLink: true, TagBase: true, TagStyle: true,
	TagHeader: true, TagFooter: true, TagMain: true, TagNav: true, TagSection: true,
	TagArticle: true, TagAside: true, TagH1: true, TagH2: true, TagH3: true,
	TagH4: true, TagH5: true, TagH6: true,
	TagDiv: true, TagP: true, TagSpan: true, TagPre: true, TagBlockquote: true,
	TagUl: true, TagOl: true, TagLi: true, TagDl: true, TagDt: true, TagDd: true,
	TagHr: true, TagFigure: true,
	TagA: true, TagStrong: true, TagEm: true, TagCode: true, TagSmall: true,
	TagBr: true, TagLabel: true,
	TagImg: true, TagTable: true, TagThead: true, TagTbody: true, TagTr: true,
	TagTh: true, TagTd: true,
	TagForm: true, TagInput: true, TagButton: true, TagSelect: true,
	TagOption: true, TagTextarea: true, TagFieldset: true, TagLegend: true,
}

// voidElements are elements that cannot have children.
var voidElements = map[Tag]bool{
	TagBase:  true,
	TagBr:    true,
	TagHr:    true,
	TagImg:   true,
	TagInput: true,
	TagLink:  true,
	TagMeta:  true,
}

// Valid reports whether t is one of the known element kinds.
func (t Tag) Valid() bool {
	return knownTags[t]
}

// IsVoid returns true if the tag is a void element.
func (t Tag) IsVoid() bool {
	return voidElements[t]
}

// Tags returns every known element kind, in no particular order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(knownTags))
	for t := range knownTags {
		tags = append(tags, t)
	}
	return tags
}
