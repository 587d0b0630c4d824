// Package registry models the public missing-persons registry.
// Records are owned by the upstream API; the portal only reads them.
package registry

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sex of a registered person.
type Sex string

const (
	SexAny    Sex = "QUALQUER"
	SexMale   Sex = "MASCULINO"
	SexFemale Sex = "FEMININO"
)

// IsFilter reports whether s narrows a search.
func (s Sex) IsFilter() bool {
	return s == SexMale || s == SexFemale
}

// ParseSex maps free input to a Sex, falling back to SexAny.
func ParseSex(s string) Sex {
	switch Sex(strings.ToUpper(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	}
	return SexAny
}

// Status of a case.
type Status string

const (
	StatusMissing Status = "DESAPARECIDO"
	StatusLocated Status = "LOCALIZADO"
)

// ParseStatus maps free input to a Status, falling back to StatusMissing.
func ParseStatus(s string) Status {
	if Status(strings.ToUpper(strings.TrimSpace(s))) == StatusLocated {
		return StatusLocated
	}
	return StatusMissing
}

// Person is a registry record.
type Person struct {
	ID             int64       `json:"id"`
	Name           string      `json:"nome"`
	Age            int         `json:"idade"`
	Sex            Sex         `json:"sexo"`
	Alive          bool        `json:"vivo"`
	PhotoURL       string      `json:"urlFoto"`
	LastOccurrence *Occurrence `json:"ultimaOcorrencia,omitempty"`
}

// IsMissing reports whether the latest occurrence is still open.
func (p Person) IsMissing() bool {
	return p.LastOccurrence == nil || p.LastOccurrence.LocatedDate == ""
}

// HasPhoto reports whether the record carries a photo URL.
func (p Person) HasPhoto() bool {
	return strings.TrimSpace(p.PhotoURL) != ""
}

// OccurrenceID returns the id of the latest occurrence, or 0.
func (p Person) OccurrenceID() int64 {
	if p.LastOccurrence == nil {
		return 0
	}
	return p.LastOccurrence.ID
}

// Occurrence is a single disappearance case.
type Occurrence struct {
	ID              int64      `json:"ocoId"`
	DisappearedDate string     `json:"dtDesaparecimento"`
	LocatedDate     string     `json:"dataLocalizacao,omitempty"`
	FoundAlive      *bool      `json:"encontradoVivo,omitempty"`
	Place           string     `json:"localDesaparecimentoConcat,omitempty"`
	Interview       *Interview `json:"ocorrenciaEntrevDesapDTO,omitempty"`
	Posters         []Poster   `json:"listaCartaz,omitempty"`
}

// Interview holds the free text collected when the case was opened.
type Interview struct {
	Information string `json:"informacao,omitempty"`
	Clothing    string `json:"vestimentasDesaparecido,omitempty"`
}

// Poster is a printable case poster.
type Poster struct {
	URL  string `json:"urlCartaz,omitempty"`
	Type string `json:"tipoCartaz,omitempty"`
}

// OccurrenceInfo is a tip already attached to an occurrence.
type OccurrenceInfo struct {
	OccurrenceID int64    `json:"ocoId"`
	Information  string   `json:"informacao"`
	Date         string   `json:"data"`
	ID           int64    `json:"id,omitempty"`
	Attachments  []string `json:"anexos,omitempty"`
}

// PersonPage is the paged search envelope returned upstream.
type PersonPage struct {
	TotalPages       int      `json:"totalPages"`
	TotalElements    int64    `json:"totalElements"`
	NumberOfElements int      `json:"numberOfElements"`
	First            bool     `json:"first"`
	Last             bool     `json:"last"`
	Size             int      `json:"size"`
	Content          []Person `json:"content"`
	Number           int      `json:"number"`
	Empty            bool     `json:"empty"`
}

// EmptyPage is what a search shows before (or instead of) an upstream answer.
func EmptyPage() PersonPage {
	return PersonPage{First: true, Last: true, Content: []Person{}, Empty: true}
}

// Statistics are the aggregate case counts.
type Statistics struct {
	Missing int64 `json:"quantPessoasDesaparecidas"`
	Located int64 `json:"quantPessoasEncontradas"`
}

// Total returns the number of cases.
func (s Statistics) Total() int64 { return s.Missing + s.Located }

// MissingPercent returns the rounded share of open cases, 0 when empty.
func (s Statistics) MissingPercent() int { return percent(s.Missing, s.Total()) }

// LocatedPercent returns the rounded share of located cases, 0 when empty.
func (s Statistics) LocatedPercent() int { return percent(s.Located, s.Total()) }

func percent(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(0).
		IntPart())
}
