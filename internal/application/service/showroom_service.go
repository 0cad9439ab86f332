package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/elitemotors/detailing-api/internal/domain/entity"
	"github.com/elitemotors/detailing-api/internal/domain/repository"
	"github.com/elitemotors/detailing-api/internal/infrastructure/cache"
	"github.com/elitemotors/detailing-api/internal/tenant"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/elitemotors/detailing-api/pkg/contact"
	"github.com/google/uuid"
)

// ShowroomService manages the cars advertised on the public site.
// The showroom always reads the elite tables, whichever database is active.
type ShowroomService struct {
	showroomRepo   repository.ShowroomRepository
	cache          *cache.QueryCache
	whatsAppNumber string
}

// NewShowroomService creates a new showroom service
func NewShowroomService(showroomRepo repository.ShowroomRepository, qc *cache.QueryCache, whatsAppNumber string) *ShowroomService {
	return &ShowroomService{showroomRepo: showroomRepo, cache: qc, whatsAppNumber: whatsAppNumber}
}

func showroomKey(filters any) cache.Key {
	return cache.NewKey(cache.EntityShowroomCars, tenant.TableName(tenant.Elite, cache.EntityShowroomCars), filters)
}

// ListCars lists cars, featured first then newest
func (s *ShowroomService) ListCars(ctx context.Context) ([]entity.ShowroomCarWithImages, error) {
	return cache.Fetch(ctx, s.cache, showroomKey(nil), s.cache.TTLs().Transactional, s.showroomRepo.List)
}

// GetCar retrieves a car by ID
func (s *ShowroomService) GetCar(ctx context.Context, id uuid.UUID) (*entity.ShowroomCarWithImages, error) {
	car, err := cache.Fetch(ctx, s.cache, showroomKey(id), s.cache.TTLs().Transactional, func(ctx context.Context) (*entity.ShowroomCarWithImages, error) {
		return s.showroomRepo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, apperror.NewNotFoundError("Showroom car")
	}
	return cloneCar(car), nil
}

// cloneCar detaches a car from the cached value
func cloneCar(car *entity.ShowroomCarWithImages) *entity.ShowroomCarWithImages {
	out := *car
	out.Images = append([]entity.ShowroomCarImage(nil), car.Images...)
	return &out
}

// HeroCar picks the car shown in the landing hero: the requested one when
// id is set, otherwise the first featured car, otherwise the newest
func (s *ShowroomService) HeroCar(ctx context.Context, id *uuid.UUID) (*entity.ShowroomCarWithImages, error) {
	cars, err := s.ListCars(ctx)
	if err != nil {
		return nil, err
	}

	if id != nil {
		for i := range cars {
			if cars[i].ID == *id {
				return cloneCar(&cars[i]), nil
			}
		}
		return nil, apperror.NewNotFoundError("Showroom car")
	}

	for i := range cars {
		if cars[i].IsFeatured {
			return cloneCar(&cars[i]), nil
		}
	}
	if len(cars) == 0 {
		return nil, apperror.NewNotFoundError("Showroom car")
	}
	return cloneCar(&cars[0]), nil
}

// InquiryInput is a visitor's contact form submission
type InquiryInput struct {
	CarID   *uuid.UUID
	Name    string
	Phone   string
	Message string
}

// Inquiry is the WhatsApp hand-off for a contact form
type Inquiry struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Inquiry builds the WhatsApp link for a contact form submission.
// Without a car the inquiry is about detailing services.
func (s *ShowroomService) Inquiry(ctx context.Context, input *InquiryInput) (*Inquiry, error) {
	var errs fieldErrors
	errs.required("name", input.Name)
	errs.required("phone", input.Phone)
	if err := errs.err(); err != nil {
		return nil, err
	}
	if s.whatsAppNumber == "" {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, "Contact number is not configured")
	}

	subject := contact.DefaultSubject
	if input.CarID != nil {
		car, err := s.GetCar(ctx, *input.CarID)
		if err != nil {
			return nil, err
		}
		subject = car.DisplayName()
	}

	return &Inquiry{
		Subject: subject,
		Message: contact.InquiryMessage(subject, input.Name, input.Phone, input.Message),
		Link:    contact.InquiryLink(s.whatsAppNumber, subject, input.Name, input.Phone, input.Message),
	}, nil
}

// InterestLink returns the "interested in buying" link for a car
func (s *ShowroomService) InterestLink(ctx context.Context, id uuid.UUID) (string, error) {
	if s.whatsAppNumber == "" {
		return "", apperror.NewAppError(http.StatusServiceUnavailable, "Contact number is not configured")
	}
	car, err := s.GetCar(ctx, id)
	if err != nil {
		return "", err
	}
	return contact.InterestLink(s.whatsAppNumber, car.DisplayName()), nil
}

// ShowroomCarInput represents the create and update input
type ShowroomCarInput struct {
	Make        string
	Model       string
	Year        int
	Price       float64
	ImageURL    string
	Description string
	Engine      string
	Power       string
	Weight      string
	TopSpeed    string
	IsFeatured  bool
	// Images are gallery images appended after the existing ones
	Images []string
}

func (in *ShowroomCarInput) validate() error {
	var errs fieldErrors
	errs.required("make", in.Make)
	errs.required("model", in.Model)
	errs.check(in.Year > 0, "year", "year is required")
	errs.check(in.Price >= 0, "price", "price cannot be negative")
	for i, img := range in.Images {
		errs.required(fmt.Sprintf("images[%d]", i), img)
	}
	return errs.err()
}

func (in *ShowroomCarInput) apply(car *entity.ShowroomCar) {
	car.Make = strings.TrimSpace(in.Make)
	car.Model = strings.TrimSpace(in.Model)
	car.Year = in.Year
	car.Price = in.Price
	car.ImageURL = in.ImageURL
	car.Description = in.Description
	car.Engine = in.Engine
	car.Power = in.Power
	car.Weight = in.Weight
	car.TopSpeed = in.TopSpeed
	car.IsFeatured = in.IsFeatured
}

func galleryImages(carID uuid.UUID, urls []string, firstOrder int) []entity.ShowroomCarImage {
	images := make([]entity.ShowroomCarImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, entity.ShowroomCarImage{CarID: carID, ImageURL: u, DisplayOrder: firstOrder + i})
	}
	return images
}

// CreateCar adds a car and its gallery. A failure writing the gallery keeps
// the car and returns a PartialWriteError.
func (s *ShowroomService) CreateCar(ctx context.Context, input *ShowroomCarInput) (*entity.ShowroomCarWithImages, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	car := &entity.ShowroomCar{}
	input.apply(car)
	if err := s.showroomRepo.Create(ctx, car); err != nil {
		return nil, err
	}

	images := galleryImages(car.ID, input.Images, 0)
	if err := s.showroomRepo.AddImages(ctx, images); err != nil {
		s.cache.Invalidate(ctx, cache.EntityShowroomCars)
		return nil, apperror.NewPartialWriteError(car.ID.String(), "showroom_car_images", err)
	}

	s.cache.Invalidate(ctx, cache.EntityShowroomCars)
	return &entity.ShowroomCarWithImages{ShowroomCar: *car, Images: images}, nil
}

// UpdateCar replaces a car's details and appends new gallery images
func (s *ShowroomService) UpdateCar(ctx context.Context, id uuid.UUID, input *ShowroomCarInput) (*entity.ShowroomCarWithImages, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.showroomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Showroom car")
	}

	car := existing.ShowroomCar
	input.apply(&car)
	if err := s.showroomRepo.Update(ctx, &car); err != nil {
		return nil, err
	}

	next := 0
	for _, img := range existing.Images {
		if img.DisplayOrder >= next {
			next = img.DisplayOrder + 1
		}
	}
	added := galleryImages(car.ID, input.Images, next)
	if err := s.showroomRepo.AddImages(ctx, added); err != nil {
		s.cache.Invalidate(ctx, cache.EntityShowroomCars)
		return nil, apperror.NewPartialWriteError(car.ID.String(), "showroom_car_images", err)
	}

	s.cache.Invalidate(ctx, cache.EntityShowroomCars)
	return &entity.ShowroomCarWithImages{ShowroomCar: car, Images: append(existing.Images, added...)}, nil
}

// DeleteCar deletes a car and its gallery
func (s *ShowroomService) DeleteCar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCar(ctx, id); err != nil {
		return err
	}
	if err := s.showroomRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EntityShowroomCars)
	return nil
}

// DeleteImage removes one gallery image
func (s *ShowroomService) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	if err := s.showroomRepo.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cache.EntityShowroomCars)
	return nil
}
