package content

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/phinehas2020/havis-candy/internal/domain"
)

// Service is the read path the storefront uses. Every accessor falls
// back to the static catalog when the repository is unconfigured (nil)
// or a fetch fails, so a page render never depends on the content store
// being reachable. Concurrent fetches of the same collection are
// de-duplicated with singleflight.
type Service struct {
	repo Repository
	sfg  singleflight.Group
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Products(ctx context.Context) []domain.Product {
	if s.repo == nil {
		return FallbackProducts
	}

	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		return s.repo.Products(ctx)
	})
	if err != nil {
		log.Printf("products fetch failed, serving fallback: %v", err)
		return FallbackProducts
	}

	products := v.([]domain.Product)
	if len(products) == 0 {
		return FallbackProducts
	}
	return products
}

func (s *Service) Locations(ctx context.Context) []domain.StoreLocation {
	if s.repo == nil {
		return FallbackLocations
	}

	v, err, _ := s.sfg.Do("locations", func() (interface{}, error) {
		return s.repo.Locations(ctx)
	})
	if err != nil {
		log.Printf("locations fetch failed, serving fallback: %v", err)
		return FallbackLocations
	}

	locations := v.([]domain.StoreLocation)
	if len(locations) == 0 {
		return FallbackLocations
	}
	return locations
}

func (s *Service) Testimonials(ctx context.Context) []domain.Testimonial {
	if s.repo == nil {
		return FallbackTestimonials
	}

	v, err, _ := s.sfg.Do("testimonials", func() (interface{}, error) {
		return s.repo.Testimonials(ctx)
	})
	if err != nil {
		log.Printf("testimonials fetch failed, serving fallback: %v", err)
		return FallbackTestimonials
	}

	testimonials := v.([]domain.Testimonial)
	if len(testimonials) == 0 {
		return FallbackTestimonials
	}
	return testimonials
}

func (s *Service) SiteSettings(ctx context.Context) domain.SiteSettings {
	if s.repo == nil {
		return FallbackSiteSettings
	}

	v, err, _ := s.sfg.Do("siteSettings", func() (interface{}, error) {
		return s.repo.SiteSettings(ctx)
	})
	if err != nil {
		log.Printf("site settings fetch failed, serving fallback: %v", err)
		return FallbackSiteSettings
	}

	return *v.(*domain.SiteSettings)
}

func (s *Service) AboutUs(ctx context.Context) domain.AboutUs {
	if s.repo == nil {
		return FallbackAboutUs
	}

	v, err, _ := s.sfg.Do("aboutUs", func() (interface{}, error) {
		return s.repo.AboutUs(ctx)
	})
	if err != nil {
		log.Printf("about us fetch failed, serving fallback: %v", err)
		return FallbackAboutUs
	}

	return *v.(*domain.AboutUs)
}
