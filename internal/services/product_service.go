package services

import (
	"errors"

	"gorm.io/gorm"

	"order_admin/internal/apperrors"
	"order_admin/internal/models"
	"order_admin/internal/repository"
)

// UpdateProductInput carries a partial update; nil fields keep the
// stored value.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

type ProductService interface {
	CreateProduct(name, description string, price float64, stock int) (*models.Product, error)
	UpdateProduct(id uint, in UpdateProductInput) (*models.Product, error)
	UpdateStock(id uint, stock int) (*models.Product, error)
	DeleteProduct(id uint) error
	GetAllProducts() ([]models.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(name, description string, price float64, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, apperrors.BadRequest("stock cannot be negative")
	}

	if _, err := s.productRepo.GetByName(name); err == nil {
		return nil, apperrors.BadRequest("Product has been already added")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BadRequest("product not found")
		}
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, apperrors.BadRequest("stock cannot be negative")
		}
		product.Stock = *in.Stock
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStock is the write path behind the realtime stock-change event.
func (s *productService) UpdateStock(id uint, stock int) (*models.Product, error) {
	if stock < 0 {
		return nil, apperrors.BadRequest("stock cannot be negative")
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BadRequest("product not found")
		}
		return nil, err
	}

	product.Stock = stock
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("product not found")
		}
		return err
	}
	return s.productRepo.Delete(product.ID)
}

func (s *productService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}
