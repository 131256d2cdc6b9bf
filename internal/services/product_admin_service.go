package services

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bathstore/internal/domain"
	"bathstore/internal/repos"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"
)

// ProductAdminService runs the product create pipeline: save image, resolve
// the category by name (creating it if absent), insert the product. The
// steps are sequential; a failure aborts the remaining steps and reports
// which step failed.
type ProductAdminService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	MediaDir string
}

func NewProductAdminService(cats *repos.CategoryRepo, prods *repos.ProductRepo, mediaDir string) *ProductAdminService {
	return &ProductAdminService{Cats: cats, Prods: prods, MediaDir: mediaDir}
}

type ProductInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	CategoryName string
	Discount     int
}

func (s *ProductAdminService) Create(in ProductInput, imageName string, img io.Reader) (domain.Product, error) {
	url, err := s.saveImage(imageName, img)
	if err != nil {
		return domain.Product{}, fmt.Errorf("image upload: %w", err)
	}

	cat, err := s.Cats.ResolveOrCreate(in.CategoryName)
	if err != nil {
		return domain.Product{}, fmt.Errorf("category resolve: %w", err)
	}

	p := domain.Product{
		ID:                 uuid.NewString(),
		CategoryID:         cat.ID,
		Name:               in.Name,
		Description:        in.Description,
		Price:              in.Price,
		DiscountPercentage: in.Discount,
		StockQuantity:      in.Stock,
		ImageURL:           url,
		Active:             true,
	}
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, fmt.Errorf("product create: %w", err)
	}
	return p, nil
}

// saveImage decodes the upload, scales it down to 800px wide when larger,
// and writes it as JPEG under the media dir. Returns the public URL.
func (s *ProductAdminService) saveImage(name string, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("not a decodable image: %w", err)
	}
	if src.Bounds().Dx() > 800 {
		src = resize.Resize(800, 0, src, resize.Lanczos3)
	}

	dir := filepath.Join(s.MediaDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		base = "product"
	}
	file := fmt.Sprintf("%s-%s.jpg", base, uuid.NewString()[:8])

	f, err := os.Create(filepath.Join(dir, file))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := jpeg.Encode(f, src, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return "/media/images/" + file, nil
}

func (s *ProductAdminService) Delete(id string) error {
	return s.Prods.Deactivate(id)
}
