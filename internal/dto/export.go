package dto

// ExportFile is a rendered export ready to be streamed as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
	CohortYear  *int
}
