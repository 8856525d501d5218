package canvass

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTerms() Terms {
	return Terms{
		RecommendedSupplier: "Acme Supplies",
		LeadTimeDays:        7,
		TotalAmount:         1250.50,
		PaymentTerms:        "30 days",
	}
}

func newAttachment(t *testing.T, kind AttachmentType, path string) *Attachment {
	t.Helper()
	a, err := NewAttachment(kind, "http://minio/bucket/"+path, path, "application/pdf", 100)
	require.NoError(t, err)
	return a
}

func q(n int) AttachmentType {
	kind, _ := QuotationType(n)
	return kind
}

func TestQuotationType(t *testing.T) {
	kind, err := QuotationType(3)
	require.NoError(t, err)
	assert.Equal(t, AttachmentType("QUOTATION_3"), kind)
	assert.True(t, kind.IsQuotation())
	assert.False(t, AttachmentCanvassSheet.IsQuotation())

	_, err = QuotationType(5)
	assert.Error(t, err)
	assert.False(t, AttachmentType("QUOTATION_5").IsValid())
}

func TestNewForm_AttachmentRules(t *testing.T) {
	tests := []struct {
		name    string
		kinds   []AttachmentType
		wantErr string
	}{
		{"sheet and one quotation", []AttachmentType{AttachmentCanvassSheet, q(1)}, ""},
		{"sheet and four quotations", []AttachmentType{AttachmentCanvassSheet, q(1), q(2), q(3), q(4)}, ""},
		{"missing sheet", []AttachmentType{q(1)}, "canvass sheet is required"},
		{"no quotation", []AttachmentType{AttachmentCanvassSheet}, "between 1 and 4 quotations"},
		{"duplicate slot", []AttachmentType{AttachmentCanvassSheet, q(1), q(1)}, "used more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var atts []*Attachment
			for i, kind := range tt.kinds {
				atts = append(atts, newAttachment(t, kind, "tickets/1/canvass/f"+string(rune('a'+i))+".pdf"))
			}
			f, err := NewForm(1, 10, 1, validTerms(), atts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, f.IsCurrent())
			assert.Equal(t, len(tt.kinds)-1, f.QuotationCount())
		})
	}
}

func TestNewForm_TermsValidation(t *testing.T) {
	atts := []*Attachment{newAttachment(t, AttachmentCanvassSheet, "s.pdf"), newAttachment(t, q(1), "q.pdf")}

	terms := validTerms()
	terms.TotalAmount = 0
	_, err := NewForm(1, 10, 1, terms, atts)
	assert.ErrorContains(t, err, "total amount")

	terms = validTerms()
	terms.RecommendedSupplier = " "
	_, err = NewForm(1, 10, 1, terms, atts)
	assert.ErrorContains(t, err, "recommended supplier")
}

func TestTerms_Validate_TotalAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr string
	}{
		{"valid", 1250.50, ""},
		{"largest storable", 9999999999999.99, ""},
		{"zero", 0, "greater than zero"},
		{"negative", -1, "greater than zero"},
		{"NaN", math.NaN(), "finite"},
		{"positive infinity", math.Inf(1), "finite"},
		{"negative infinity", math.Inf(-1), "finite"},
		{"column overflow", 1e13, "less than"},
		{"far beyond column", 1e20, "less than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := validTerms()
			terms.TotalAmount = tt.amount
			err := terms.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestForm_SetIDPropagatesToAttachments(t *testing.T) {
	atts := []*Attachment{newAttachment(t, AttachmentCanvassSheet, "s.pdf"), newAttachment(t, q(1), "q.pdf")}
	f, err := NewForm(1, 10, 1, validTerms(), atts)
	require.NoError(t, err)

	f.SetID(77)
	for _, a := range f.Attachments() {
		assert.Equal(t, uint(77), a.FormID())
	}
}

// Existing revision F1 holds sheet S1 and quotation Q1. An update brings a
// new sheet S2 and leaves the quotation slot empty: the result is S2 plus a
// new row carrying Q1's URL.
func TestResolveAttachments_CarriesForwardNullSlots(t *testing.T) {
	s1 := newAttachment(t, AttachmentCanvassSheet, "tickets/1/canvass/s1.pdf")
	q1 := newAttachment(t, q(1), "tickets/1/canvass/q1.pdf")
	q1.SetID(2)
	f1 := ReconstructForm(1, 1, 1, 10, validTerms(), []*Attachment{s1, q1}, nil, time.Now())

	s2 := newAttachment(t, AttachmentCanvassSheet, "tickets/1/canvass/s2.pdf")
	got, err := ResolveAttachments(f1, map[AttachmentType]*Attachment{AttachmentCanvassSheet: s2}, nil)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Same(t, s2, got[0])
	assert.Equal(t, q(1), got[1].Type())
	assert.Equal(t, q1.ObjectURL(), got[1].ObjectURL())
	assert.Zero(t, got[1].ID())

	assert.Equal(t, []string{"tickets/1/canvass/s1.pdf"}, PathsToRemove([]*Form{f1}, []*Form{
		ReconstructForm(2, 1, 2, 10, validTerms(), got, nil, time.Now()),
	}))
}

func TestResolveAttachments_Removal(t *testing.T) {
	s1 := newAttachment(t, AttachmentCanvassSheet, "s1.pdf")
	q1 := newAttachment(t, q(1), "q1.pdf")
	q2 := newAttachment(t, q(2), "q2.pdf")
	f1 := ReconstructForm(1, 1, 1, 10, validTerms(), []*Attachment{s1, q1, q2}, nil, time.Now())

	got, err := ResolveAttachments(f1, nil, []AttachmentType{q(2)})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, q(1), got[1].Type())

	_, err = ResolveAttachments(f1, nil, []AttachmentType{AttachmentCanvassSheet})
	assert.Error(t, err)
}

func TestForm_Supersede(t *testing.T) {
	f := ReconstructForm(1, 1, 1, 10, validTerms(), nil, nil, time.Now())
	require.NoError(t, f.Supersede(time.Now()))
	assert.False(t, f.IsCurrent())
	assert.Error(t, f.Supersede(time.Now()))
}
