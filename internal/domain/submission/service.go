package submission

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/core/id"
	"desaparecidos/pkg/logger"
	"desaparecidos/pkg/mask"
)

// Limits bound photo uploads.
type Limits struct {
	MaxPhotos     int
	MaxPhotoBytes int64
}

// DefaultLimits returns the upload limits used by the forms.
func DefaultLimits() Limits {
	return Limits{
		MaxPhotos:     5,
		MaxPhotoBytes: 10 << 20,
	}
}

// Check rejects too many, too large or non-image attachments.
func (l Limits) Check(photos []Attachment) error {
	if l.MaxPhotos > 0 && len(photos) > l.MaxPhotos {
		return apperror.NewValidation("too many photos").
			WithDetail("max", l.MaxPhotos).
			WithDetail("received", len(photos))
	}
	for _, p := range photos {
		if l.MaxPhotoBytes > 0 && p.Size > l.MaxPhotoBytes {
			return apperror.NewPayloadTooLarge(p.Field, l.MaxPhotoBytes)
		}
		if !p.IsImage() {
			return apperror.NewUnsupportedPayload(p.Field, p.ContentType)
		}
	}
	return nil
}

// Service accepts submissions. It has no storage: accepted input is logged
// and returned.
type Service struct {
	limits Limits
	policy *bluemonday.Policy
	newID  func() string
}

// NewService creates a new submission service.
func NewService(limits Limits) *Service {
	return &Service{
		limits: limits,
		policy: bluemonday.StrictPolicy(),
		newID:  id.NewString,
	}
}

// Limits returns the configured upload limits.
func (s *Service) Limits() Limits { return s.limits }

// maxCleanPasses bounds how many layers of entity encoding are peeled.
const maxCleanPasses = 4

// clean strips markup and surrounding whitespace from free text and
// returns it unescaped. Sanitising repeats until a pass changes nothing,
// so entity-encoded markup cannot survive as tags once decoded.
func (s *Service) clean(v string) string {
	for range maxCleanPasses {
		next := html.UnescapeString(s.policy.Sanitize(v))
		if next == v {
			break
		}
		v = next
	}
	if strings.ContainsAny(v, "<>") && html.UnescapeString(s.policy.Sanitize(v)) != v {
		v = s.policy.Sanitize(v)
	}
	return strings.TrimSpace(v)
}

// requireFields returns a validation error naming every blank field.
// pairs alternates field name and value.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return apperror.NewRequiredFields(missing...)
	}
	return nil
}

// formatPhone masks a phone number, keeping blank input blank.
func formatPhone(raw string) string {
	if mask.StripNonDigits(raw) == "" {
		return ""
	}
	return mask.FormatPhone(raw)
}

// SubmitTip accepts sighting information about a person.
func (s *Service) SubmitTip(ctx context.Context, tip Tip) (*TipReceipt, error) {
	if tip.PersonID <= 0 {
		return nil, apperror.NewInvalidInput("id", "person id must be a positive integer")
	}

	tip.Name = s.clean(tip.Name)
	tip.Phone = formatPhone(tip.Phone)
	tip.Email = strings.TrimSpace(tip.Email)
	tip.SightingDate = strings.TrimSpace(tip.SightingDate)
	tip.SightingPlace = s.clean(tip.SightingPlace)
	tip.Information = s.clean(tip.Information)

	if err := requireFields(
		"nome", tip.Name,
		"telefone", tip.Phone,
		"email", tip.Email,
		"dataAvistamento", tip.SightingDate,
		"localAvistamento", tip.SightingPlace,
		"informacoes", tip.Information,
	); err != nil {
		return nil, err
	}
	if err := s.limits.Check(tip.Photos); err != nil {
		return nil, err
	}

	receipt := &TipReceipt{
		Protocol:      s.newID(),
		PersonID:      tip.PersonID,
		Name:          tip.Name,
		Phone:         tip.Phone,
		SightingDate:  tip.SightingDate,
		SightingPlace: tip.SightingPlace,
		PhotoCount:    len(tip.Photos),
	}

	logger.Info(ctx, "tip received",
		"protocol", receipt.Protocol,
		"person_id", tip.PersonID,
		"name", tip.Name,
		"phone", tip.Phone,
		"email", tip.Email,
		"sighting_date", tip.SightingDate,
		"sighting_place", tip.SightingPlace,
		"information", tip.Information,
		"photos", len(tip.Photos),
	)

	return receipt, nil
}

// SubmitMissingReport accepts a report about a person not yet registered.
// At least one photo is required.
func (s *Service) SubmitMissingReport(ctx context.Context, r MissingReport) (*MissingReportReceipt, error) {
	r.PersonName = s.clean(r.PersonName)
	r.Sex = strings.ToUpper(strings.TrimSpace(r.Sex))
	r.DisappearedDate = strings.TrimSpace(r.DisappearedDate)
	r.DisappearedAt = s.clean(r.DisappearedAt)
	r.Circumstances = s.clean(r.Circumstances)
	r.Clothing = s.clean(r.Clothing)
	r.Characteristics = s.clean(r.Characteristics)
	r.InformantName = s.clean(r.InformantName)
	r.Phone = formatPhone(r.Phone)
	r.Email = strings.TrimSpace(r.Email)

	if err := requireFields(
		"nomePessoa", r.PersonName,
		"sexo", r.Sex,
		"dataDesaparecimento", r.DisappearedDate,
		"localDesaparecimento", r.DisappearedAt,
		"circunstancias", r.Circumstances,
		"nomeInformante", r.InformantName,
		"telefone", r.Phone,
		"email", r.Email,
	); err != nil {
		return nil, err
	}
	if r.Age <= 0 {
		return nil, apperror.NewRequiredFields("idade")
	}
	if len(r.Photos) == 0 {
		return nil, apperror.NewRequiredFields("fotos")
	}
	if err := s.limits.Check(r.Photos); err != nil {
		return nil, err
	}

	receipt := &MissingReportReceipt{
		Protocol:        s.newID(),
		PersonName:      r.PersonName,
		Age:             r.Age,
		Sex:             r.Sex,
		DisappearedDate: r.DisappearedDate,
		DisappearedAt:   r.DisappearedAt,
		InformantName:   r.InformantName,
		Phone:           r.Phone,
		PhotoCount:      len(r.Photos),
	}

	logger.Info(ctx, "missing person report received",
		"protocol", receipt.Protocol,
		"person_name", r.PersonName,
		"age", r.Age,
		"sex", r.Sex,
		"disappeared_date", r.DisappearedDate,
		"disappeared_at", r.DisappearedAt,
		"circumstances", r.Circumstances,
		"clothing", r.Clothing,
		"characteristics", r.Characteristics,
		"informant", r.InformantName,
		"phone", r.Phone,
		"email", r.Email,
		"photos", len(r.Photos),
	)

	return receipt, nil
}

// SubmitContact accepts a contact message. Phone is optional.
func (s *Service) SubmitContact(ctx context.Context, m ContactMessage) (*ContactReceipt, error) {
	m.Name = s.clean(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = formatPhone(m.Phone)
	m.Subject = s.clean(m.Subject)
	m.Message = s.clean(m.Message)

	if err := requireFields(
		"nome", m.Name,
		"email", m.Email,
		"assunto", m.Subject,
		"mensagem", m.Message,
	); err != nil {
		return nil, err
	}

	receipt := &ContactReceipt{
		Protocol: s.newID(),
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Subject:  m.Subject,
	}

	logger.Info(ctx, "contact message received",
		"protocol", receipt.Protocol,
		"name", m.Name,
		"email", m.Email,
		"phone", m.Phone,
		"subject", m.Subject,
		"message", m.Message,
	)

	return receipt, nil
}
