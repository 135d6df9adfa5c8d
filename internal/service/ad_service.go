package service

import (
	"context"

	"classifieds/internal/models"
	"classifieds/internal/observability"
	"classifieds/internal/repository"
	"classifieds/internal/validation"
)

const (
	msgInvalidID      = "Invalid ID"
	msgAdNotFound     = "Ad not found"
	msgRequiredFields = "Required fields: title, description, seller, location, category"
	msgInvalidStatus  = "Status must be draft or published"
)

// AdService manages listings and enforces ownership.
type AdService struct {
	ads repository.AdRepository
}

// AdInput is the create/update payload. Every field tracks presence so an
// update only replaces the keys the caller sent.
type AdInput struct {
	Title           Optional[string]   `json:"title" swaggertype:"string"`
	Description     Optional[string]   `json:"description" swaggertype:"string"`
	Seller          Optional[string]   `json:"seller" swaggertype:"string"`
	Location        Optional[string]   `json:"location" swaggertype:"string"`
	Cep             Optional[string]   `json:"cep" swaggertype:"string"`
	Price           Optional[float64]  `json:"price" swaggertype:"number"`
	Category        Optional[string]   `json:"category" swaggertype:"string"`
	Bedrooms        Optional[int]      `json:"bedrooms" swaggertype:"integer"`
	Bathrooms       Optional[int]      `json:"bathrooms" swaggertype:"integer"`
	Rules           Optional[[]string] `json:"rules" swaggertype:"array,string"`
	Amenities       Optional[[]string] `json:"amenities" swaggertype:"array,string"`
	CustomRules     Optional[string]   `json:"custom_rules" swaggertype:"string"`
	CustomAmenities Optional[string]   `json:"custom_amenities" swaggertype:"string"`
	Images          Optional[[]string] `json:"images" swaggertype:"array,string"`
	Status          Optional[string]   `json:"status" swaggertype:"string" enums:"draft,published"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewAdService returns an AdService.
func NewAdService(ads repository.AdRepository) *AdService {
	return &AdService{ads: ads}
}

// List returns published listings, newest first.
func (s *AdService) List(ctx context.Context) ([]models.Ad, error) {
	return s.ads.ListPublished(ctx)
}

// GetByID returns a listing regardless of its status.
func (s *AdService) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	if id == 0 {
		return nil, models.NewValidationError(msgInvalidID)
	}
	return s.ads.GetByID(ctx, id)
}

// ListByUser returns every listing owned by ownerID, drafts included.
func (s *AdService) ListByUser(ctx context.Context, ownerID uint) ([]models.Ad, error) {
	return s.ads.ListByUser(ctx, ownerID)
}

// Create persists a new listing owned by ownerID.
func (s *AdService) Create(ctx context.Context, ownerID uint, in AdInput) (ad *models.Ad, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AdService", "Create")
	defer func() { observability.EndSpan(span, err) }()

	status := models.AdStatusPublished
	if in.Status.Valid && in.Status.Value == models.AdStatusDraft {
		status = models.AdStatusDraft
	}

	ad = &models.Ad{
		UserID:          ownerID,
		Title:           in.Title.Value,
		Description:     in.Description.Value,
		Seller:          in.Seller.Value,
		Location:        in.Location.Value,
		Cep:             stringOrNil(in.Cep),
		Price:           in.Price.Ptr(),
		Category:        in.Category.Value,
		Bedrooms:        in.Bedrooms.Ptr(),
		Bathrooms:       in.Bathrooms.Ptr(),
		Rules:           listOrEmpty(in.Rules),
		Amenities:       listOrEmpty(in.Amenities),
		CustomRules:     stringOrNil(in.CustomRules),
		CustomAmenities: stringOrNil(in.CustomAmenities),
		Images:          listOrEmpty(in.Images),
		Status:          status,
	}

	if err := validateAd(ad); err != nil {
		return nil, err
	}
	if err := s.ads.Create(ctx, ad); err != nil {
		return nil, err
	}

	observability.AdsCreated.WithLabelValues(ad.Status).Inc()
	return ad, nil
}

// Update replaces the fields present in the payload on a listing owned by
// ownerID. Absent fields keep their stored values.
func (s *AdService) Update(ctx context.Context, ownerID, id uint, in AdInput) (ad *models.Ad, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AdService", "Update")
	defer func() { observability.EndSpan(span, err) }()

	ad, err = s.owned(ctx, ownerID, id, "You do not have permission to edit this ad")
	if err != nil {
		return nil, err
	}

	applyPatch(ad, in)

	if err := validateAd(ad); err != nil {
		return nil, err
	}
	if err := s.ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Remove deletes a listing owned by ownerID. Favorites pointing at it are
// removed by the store.
func (s *AdService) Remove(ctx context.Context, ownerID, id uint) (resp *MessageResponse, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "AdService", "Remove")
	defer func() { observability.EndSpan(span, err) }()

	if _, err := s.owned(ctx, ownerID, id, "You do not have permission to delete this ad"); err != nil {
		return nil, err
	}
	if err := s.ads.Delete(ctx, id); err != nil {
		return nil, err
	}

	observability.AdsDeleted.Inc()
	return &MessageResponse{Message: "Ad deleted successfully"}, nil
}

// owned loads a listing and checks that ownerID owns it.
func (s *AdService) owned(ctx context.Context, ownerID, id uint, forbidden string) (*models.Ad, error) {
	if id == 0 {
		return nil, models.NewValidationError(msgInvalidID)
	}
	ad, err := s.ads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad.UserID != ownerID {
		return nil, models.NewForbiddenError(forbidden)
	}
	return ad, nil
}

func applyPatch(ad *models.Ad, in AdInput) {
	if in.Title.Set {
		ad.Title = in.Title.Value
	}
	if in.Description.Set {
		ad.Description = in.Description.Value
	}
	if in.Seller.Set {
		ad.Seller = in.Seller.Value
	}
	if in.Location.Set {
		ad.Location = in.Location.Value
	}
	if in.Cep.Set {
		ad.Cep = stringOrNil(in.Cep)
	}
	if in.Price.Set {
		ad.Price = in.Price.Ptr()
	}
	if in.Category.Set {
		ad.Category = in.Category.Value
	}
	if in.Bedrooms.Set {
		ad.Bedrooms = in.Bedrooms.Ptr()
	}
	if in.Bathrooms.Set {
		ad.Bathrooms = in.Bathrooms.Ptr()
	}
	if in.Rules.Set {
		ad.Rules = listOrEmpty(in.Rules)
	}
	if in.Amenities.Set {
		ad.Amenities = listOrEmpty(in.Amenities)
	}
	if in.CustomRules.Set {
		ad.CustomRules = stringOrNil(in.CustomRules)
	}
	if in.CustomAmenities.Set {
		ad.CustomAmenities = stringOrNil(in.CustomAmenities)
	}
	if in.Images.Set {
		ad.Images = listOrEmpty(in.Images)
	}
	if in.Status.Set {
		ad.Status = statusOrDefault(in.Status)
	}
}

// statusOrDefault maps a null status to published, the same default Create
// applies. Any other value is kept so validation can reject unknown states.
func statusOrDefault(o Optional[string]) string {
	if !o.Valid {
		return models.AdStatusPublished
	}
	return o.Value
}

func validateAd(ad *models.Ad) error {
	errs := validation.Check(ad)
	if errs == nil {
		return nil
	}
	if len(validation.Fields(errs, "required")) > 0 {
		return models.NewValidationError(msgRequiredFields)
	}
	if len(validation.Fields(errs, "adstatus")) > 0 {
		return models.NewValidationError(msgInvalidStatus)
	}
	return models.NewValidationError(msgRequiredFields)
}
