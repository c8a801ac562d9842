package services

import (
	"context"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/helpers"
	"github.com/hamrosewa/backend/internal/models"
)

type VerificationService struct {
	verificationRepo models.VerificationRepo
	userRepo         models.UserRepo
	cld              *cloudinary.Cloudinary
}

func NewVerificationService(verificationRepo models.VerificationRepo, userRepo models.UserRepo, cld *cloudinary.Cloudinary) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		cld:              cld,
	}
}

type SubmitVerificationInput struct {
	DocumentType   string `json:"document_type" validate:"required"`
	DocumentNumber string `json:"document_number"`
	Document       string `json:"document"` // data URI or URL
}

// Submit uploads a provider's identity document and opens a pending
// verification. Admins review the row out of band.
func (vs *VerificationService) Submit(ctx context.Context, providerID int64, in *SubmitVerificationInput) (*models.ProviderVerification, error) {
	if err := models.Validate.Struct(in); err != nil {
		return nil, apperr.Validationf("invalid verification request: %v", err)
	}
	docType := strings.ToLower(strings.TrimSpace(in.DocumentType))
	if !models.ValidDocumentTypes[docType] {
		return nil, apperr.Validationf("unsupported document type %q", docType)
	}

	provider, err := vs.userRepo.GetUserByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider.Role != models.RoleProvider {
		return nil, apperr.Unauthorizedf("only providers can submit verification documents")
	}

	docURL := ""
	if in.Document != "" {
		if vs.cld == nil {
			return nil, apperr.Storagef(nil, "document storage is not configured")
		}
		docURL, err = helpers.UploadDocument(ctx, vs.cld, in.Document, helpers.VerificationFolder)
		if err != nil {
			return nil, apperr.Storagef(err, "failed to store document")
		}
	}

	row := map[string]interface{}{
		"provider_id":     providerID,
		"document_type":   docType,
		"document_number": in.DocumentNumber,
		"document_url":    docURL,
		"status":          models.VerificationPending,
	}
	return vs.verificationRepo.CreateVerification(ctx, row)
}

func (vs *VerificationService) List(ctx context.Context, providerID int64) ([]*models.ProviderVerification, error) {
	return vs.verificationRepo.ListVerificationsByProvider(ctx, providerID)
}

// Delete removes a provider's own document.
func (vs *VerificationService) Delete(ctx context.Context, providerID, id int64) error {
	return vs.verificationRepo.DeleteVerification(ctx, id, providerID)
}
