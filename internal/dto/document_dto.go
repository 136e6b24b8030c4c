package dto

type UploadDocumentResponse struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}
