package model

import "time"

// DocType is the category of an uploaded supporting document.
type DocType string

const (
	DocTypeGradDiploma   DocType = "GRAD_DIPLOMA"
	DocTypePostCert      DocType = "POST_CERT"
	DocTypeCourses       DocType = "COURSES"
	DocTypeLanguages     DocType = "LANGUAGES"
	DocTypeEvents        DocType = "EVENTS"
	DocTypeResearchExt   DocType = "RESEARCH_EXT"
	DocTypeResearchGroup DocType = "RESEARCH_GROUP"
	DocTypePresentations DocType = "PRESENTATIONS"
	DocTypePublications  DocType = "PUBLICATIONS"
	DocTypeProfessional  DocType = "PROFESSIONAL"
	DocTypeAwards        DocType = "AWARDS"
	DocTypeCouncilReg    DocType = "COUNCIL_REG"
	DocTypeOther         DocType = "OTHER"
)

var docTypeLabels = map[DocType]string{
	DocTypeGradDiploma:   "Undergraduate diploma",
	DocTypePostCert:      "Graduate certificate",
	DocTypeCourses:       "Complementary courses",
	DocTypeLanguages:     "Language courses",
	DocTypeEvents:        "Event participation",
	DocTypeResearchExt:   "Research or extension project",
	DocTypeResearchGroup: "Research group",
	DocTypePresentations: "Presentations and talks",
	DocTypePublications:  "Publications",
	DocTypeProfessional:  "Professional experience",
	DocTypeAwards:        "Awards and honors",
	DocTypeCouncilReg:    "Professional council registration",
	DocTypeOther:         "Other",
}

// DocTypes lists every category in display order.
var DocTypes = []DocType{
	DocTypeGradDiploma,
	DocTypePostCert,
	DocTypeCourses,
	DocTypeLanguages,
	DocTypeEvents,
	DocTypeResearchExt,
	DocTypeResearchGroup,
	DocTypePresentations,
	DocTypePublications,
	DocTypeProfessional,
	DocTypeAwards,
	DocTypeCouncilReg,
	DocTypeOther,
}

// Valid reports whether t is a known category.
func (t DocType) Valid() bool {
	_, ok := docTypeLabels[t]
	return ok
}

// Label returns the human readable name of the category.
func (t DocType) Label() string {
	if l, ok := docTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// FileRef points at the stored bytes of a document.
type FileRef struct {
	StorageKey       string `json:"-"`
	OriginalFilename string `json:"filename"`
	Size             int64  `json:"size"`
	ContentType      string `json:"content_type"`
}

// Document is a file uploaded against a request. Documents are append-only
// and are removed only together with their request.
type Document struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"-"`
	DocType     DocType   `json:"doc_type"`
	Description string    `json:"description,omitempty"`
	File        FileRef   `json:"file"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
