package canvass

import (
	"fmt"
	"strings"
	"time"

	"github.com/procureflow/procureflow/internal/shared/biztime"
)

// AttachmentType tags a file slot on a canvass form.
type AttachmentType string

const (
	AttachmentCanvassSheet AttachmentType = "CANVASS_SHEET"

	quotationPrefix = "QUOTATION_"
	MaxQuotations   = 4
)

// QuotationType returns the tag of quotation slot n (1-based).
func QuotationType(n int) (AttachmentType, error) {
	if n < 1 || n > MaxQuotations {
		return "", fmt.Errorf("quotation slot must be between 1 and %d, got %d", MaxQuotations, n)
	}
	return AttachmentType(fmt.Sprintf("%s%d", quotationPrefix, n)), nil
}

// SlotTypes lists every slot in display order.
func SlotTypes() []AttachmentType {
	types := []AttachmentType{AttachmentCanvassSheet}
	for i := 1; i <= MaxQuotations; i++ {
		q, _ := QuotationType(i)
		types = append(types, q)
	}
	return types
}

func (t AttachmentType) String() string {
	return string(t)
}

func (t AttachmentType) IsQuotation() bool {
	if !strings.HasPrefix(string(t), quotationPrefix) {
		return false
	}
	return t.IsValid()
}

func (t AttachmentType) IsValid() bool {
	for _, s := range SlotTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// Attachment is one stored file of a canvass revision.
type Attachment struct {
	id         uint
	formID     uint
	kind       AttachmentType
	objectURL  string
	objectPath string
	fileType   string
	fileSize   int64
	createdAt  time.Time
}

func NewAttachment(kind AttachmentType, objectURL, objectPath, fileType string, fileSize int64) (*Attachment, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid attachment type: %s", kind)
	}
	if objectURL == "" || objectPath == "" {
		return nil, fmt.Errorf("attachment %s has no stored object", kind)
	}
	if fileSize < 0 {
		return nil, fmt.Errorf("attachment %s has negative size", kind)
	}
	return &Attachment{
		kind:       kind,
		objectURL:  objectURL,
		objectPath: objectPath,
		fileType:   fileType,
		fileSize:   fileSize,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(id, formID uint, kind AttachmentType, objectURL, objectPath, fileType string, fileSize int64, createdAt time.Time) *Attachment {
	return &Attachment{
		id:         id,
		formID:     formID,
		kind:       kind,
		objectURL:  objectURL,
		objectPath: objectPath,
		fileType:   fileType,
		fileSize:   fileSize,
		createdAt:  createdAt,
	}
}

func (a *Attachment) ID() uint             { return a.id }
func (a *Attachment) FormID() uint         { return a.formID }
func (a *Attachment) Type() AttachmentType { return a.kind }
func (a *Attachment) ObjectURL() string    { return a.objectURL }
func (a *Attachment) ObjectPath() string   { return a.objectPath }
func (a *Attachment) FileType() string     { return a.fileType }
func (a *Attachment) FileSize() int64      { return a.fileSize }
func (a *Attachment) CreatedAt() time.Time { return a.createdAt }

func (a *Attachment) SetID(id uint) {
	a.id = id
}

func (a *Attachment) setFormID(formID uint) {
	a.formID = formID
}

// CarryForward copies the attachment into a new, unsaved row that points
// at the same stored object.
func (a *Attachment) CarryForward() *Attachment {
	return &Attachment{
		kind:       a.kind,
		objectURL:  a.objectURL,
		objectPath: a.objectPath,
		fileType:   a.fileType,
		fileSize:   a.fileSize,
		createdAt:  biztime.NowUTC(),
	}
}
