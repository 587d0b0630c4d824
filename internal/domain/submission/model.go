// Package submission receives citizen forms: tips about a case, new
// missing-person reports and contact messages.
//
// Nothing is persisted. Each submission is checked for required fields,
// normalised, logged and echoed back with a protocol number.
package submission

import (
	"strings"
)

// Attachment describes an uploaded photo. File contents are never kept.
type Attachment struct {
	Field       string `json:"campo"`
	Filename    string `json:"nomeArquivo"`
	Size        int64  `json:"tamanho"`
	ContentType string `json:"tipo"`
}

// IsImage reports whether the detected type is an image.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// Tip is sighting information about a registered person.
type Tip struct {
	PersonID      int64
	Name          string
	Phone         string
	Email         string
	SightingDate  string
	SightingPlace string
	Information   string
	Photos        []Attachment
}

// TipReceipt echoes an accepted tip.
type TipReceipt struct {
	Protocol      string `json:"protocolo"`
	PersonID      int64  `json:"pessoaId"`
	Name          string `json:"nome"`
	Phone         string `json:"telefone"`
	SightingDate  string `json:"dataAvistamento"`
	SightingPlace string `json:"localAvistamento"`
	PhotoCount    int    `json:"quantidadeFotos"`
}

// MissingReport reports a person who is not yet in the registry.
type MissingReport struct {
	PersonName      string
	Age             int
	Sex             string
	DisappearedDate string
	DisappearedAt   string
	Circumstances   string
	Clothing        string
	Characteristics string
	InformantName   string
	Phone           string
	Email           string
	Photos          []Attachment
}

// MissingReportReceipt echoes an accepted report.
type MissingReportReceipt struct {
	Protocol        string `json:"protocolo"`
	PersonName      string `json:"nomePessoa"`
	Age             int    `json:"idade"`
	Sex             string `json:"sexo"`
	DisappearedDate string `json:"dataDesaparecimento"`
	DisappearedAt   string `json:"localDesaparecimento"`
	InformantName   string `json:"nomeInformante"`
	Phone           string `json:"telefone"`
	PhotoCount      int    `json:"quantidadeFotos"`
}

// ContactMessage is a general message to the portal maintainers.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ContactReceipt echoes an accepted contact message.
type ContactReceipt struct {
	Protocol string `json:"protocolo"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone,omitempty"`
	Subject  string `json:"assunto"`
}
