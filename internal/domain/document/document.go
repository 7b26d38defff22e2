// Package document defines the marked-goods introduction document accepted
// by the registry's create-document endpoint.
//
// The structs are plain data carriers: the client never inspects their
// contents, it only serializes a document as a whole. Which fields are
// required depends on the product group; everything is optional here and
// empty fields are omitted from the JSON output.
package document

// IntroduceGoods is the source document for the "introduce goods into
// circulation (domestic production)" operation. Its JSON form is Base64
// encoded into the product_document envelope field.
type IntroduceGoods struct {
	Description *Description `json:"description,omitempty"`

	DocumentID     string `json:"doc_id,omitempty"`
	DocumentStatus string `json:"doc_status,omitempty"`
	DocumentType   string `json:"doc_type,omitempty"`

	ImportRequest *bool `json:"importRequest,omitempty"`

	OwnerINN       string `json:"owner_inn,omitempty"`
	ParticipantINN string `json:"participant_inn,omitempty"`
	ProducerINN    string `json:"producer_inn,omitempty"`

	// Dates use the registry's yyyy-MM-dd convention unless the product
	// group documentation says otherwise.
	ProductionDate string `json:"production_date,omitempty"`
	ProductionType string `json:"production_type,omitempty"`

	Products []Product `json:"products,omitempty"`

	RegistrationDate   string `json:"reg_date,omitempty"`
	RegistrationNumber string `json:"reg_number,omitempty"`
}

// Description carries supplementary participant details.
type Description struct {
	ParticipantINN string `json:"participantInn,omitempty"`
}

// Product is a single line item in an introduction document. The set of
// required fields varies per product group.
type Product struct {
	CertificateDocument       string `json:"certificate_document,omitempty"`
	CertificateDocumentDate   string `json:"certificate_document_date,omitempty"`
	CertificateDocumentNumber string `json:"certificate_document_number,omitempty"`

	OwnerINN       string `json:"owner_inn,omitempty"`
	ProducerINN    string `json:"producer_inn,omitempty"`
	ProductionDate string `json:"production_date,omitempty"`

	TNVEDCode string `json:"tnved_code,omitempty"`
	UITCode   string `json:"uit_code,omitempty"`
	UITUCode  string `json:"uitu_code,omitempty"`
}
