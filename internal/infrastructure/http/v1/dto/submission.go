package dto

import (
	"desaparecidos/internal/domain/submission"
)

// TipForm is the sighting form, posted as multipart. Photos arrive in
// foto_* file fields.
type TipForm struct {
	Name          string `form:"nome" binding:"notblank"`
	Phone         string `form:"telefone" binding:"notblank"`
	Email         string `form:"email" binding:"notblank"`
	SightingDate  string `form:"dataAvistamento" binding:"notblank"`
	SightingPlace string `form:"localAvistamento" binding:"notblank"`
	Information   string `form:"informacoes" binding:"notblank"`
}

// ToTip converts the form.
func (f TipForm) ToTip(personID int64, photos []submission.Attachment) submission.Tip {
	return submission.Tip{
		PersonID:      personID,
		Name:          f.Name,
		Phone:         f.Phone,
		Email:         f.Email,
		SightingDate:  f.SightingDate,
		SightingPlace: f.SightingPlace,
		Information:   f.Information,
		Photos:        photos,
	}
}

// TipData is the data echoed by POST /api/informacoes/:id.
type TipData struct {
	Protocol      string `json:"protocolo"`
	PersonID      string `json:"pessoaId"`
	Name          string `json:"nome"`
	Phone         string `json:"telefone"`
	SightingDate  string `json:"dataAvistamento"`
	SightingPlace string `json:"localAvistamento"`
	PhotoCount    int    `json:"quantidadeFotos"`
}

// FromTipReceipt converts a receipt. pessoaId is echoed as received.
func FromTipReceipt(rawID string, r *submission.TipReceipt) TipData {
	return TipData{
		Protocol:      r.Protocol,
		PersonID:      rawID,
		Name:          r.Name,
		Phone:         r.Phone,
		SightingDate:  r.SightingDate,
		SightingPlace: r.SightingPlace,
		PhotoCount:    r.PhotoCount,
	}
}

// MissingReportForm is the new-report form, posted as multipart with
// photos in the fotos field.
type MissingReportForm struct {
	PersonName      string `form:"nomePessoa" binding:"notblank"`
	Age             int    `form:"idade" binding:"gt=0,lte=130"`
	Sex             string `form:"sexo" binding:"notblank"`
	DisappearedDate string `form:"dataDesaparecimento" binding:"notblank"`
	DisappearedAt   string `form:"localDesaparecimento" binding:"notblank"`
	Circumstances   string `form:"circunstancias" binding:"notblank"`
	Clothing        string `form:"vestimentas"`
	Characteristics string `form:"caracteristicas"`
	InformantName   string `form:"nomeInformante" binding:"notblank"`
	Phone           string `form:"telefone" binding:"notblank"`
	Email           string `form:"email" binding:"notblank"`
}

// ToReport converts the form.
func (f MissingReportForm) ToReport(photos []submission.Attachment) submission.MissingReport {
	return submission.MissingReport{
		PersonName:      f.PersonName,
		Age:             f.Age,
		Sex:             f.Sex,
		DisappearedDate: f.DisappearedDate,
		DisappearedAt:   f.DisappearedAt,
		Circumstances:   f.Circumstances,
		Clothing:        f.Clothing,
		Characteristics: f.Characteristics,
		InformantName:   f.InformantName,
		Phone:           f.Phone,
		Email:           f.Email,
		Photos:          photos,
	}
}

// ContactForm is the contact form. Phone is optional.
type ContactForm struct {
	Name    string `form:"nome" binding:"notblank"`
	Email   string `form:"email" binding:"notblank"`
	Phone   string `form:"telefone"`
	Subject string `form:"assunto" binding:"notblank"`
	Message string `form:"mensagem" binding:"notblank"`
}

// ToMessage converts the form.
func (f ContactForm) ToMessage() submission.ContactMessage {
	return submission.ContactMessage{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Subject: f.Subject,
		Message: f.Message,
	}
}
