package cart

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/models"
)

// DBStore backs authenticated carts with the database. The server copy is
// the only authoritative one for a logged-in user; callers cache snapshots
// at most until the next invalidation.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Fetch(owner string) (Snapshot, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", owner).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A user who never carted anything has an empty cart, not an error.
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Items: make([]Line, 0, len(cart.Items))}
	for _, item := range cart.Items {
		snap.Items = append(snap.Items, lineFromModel(item))
	}
	return snap, nil
}

// Add merges into an existing line when the same product/size/color is
// already in the cart, otherwise creates a new line. The cart row itself is
// created on first use.
func (s *DBStore) Add(owner string, line Line) (Line, error) {
	cart, err := s.findOrCreateCart(owner)
	if err != nil {
		return Line{}, err
	}

	var item models.CartItem
	err = s.db.Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
		cart.CartID, line.ProductID, line.Size, line.Color).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:       cart.CartID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			UnitPrice:    line.UnitPrice,
			Size:         line.Size,
			Color:        line.Color,
			Quantity:     line.Quantity,
			AddedAt:      time.Now(),
		}
		if err := s.db.Create(&item).Error; err != nil {
			return Line{}, err
		}
		return lineFromModel(item), nil
	}
	if err != nil {
		return Line{}, err
	}

	item.Quantity += line.Quantity
	item.AddedAt = time.Now()
	if err := s.db.Save(&item).Error; err != nil {
		return Line{}, err
	}
	return lineFromModel(item), nil
}

func (s *DBStore) UpdateQuantity(owner string, itemID uint, quantity int) error {
	cart, err := s.findCart(owner)
	if err != nil {
		return err
	}

	result := s.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cart.CartID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *DBStore) Remove(owner string, itemID uint) error {
	cart, err := s.findCart(owner)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND cart_id = ?", itemID, cart.CartID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *DBStore) Clear(owner string) error {
	var cart models.Cart
	err := s.db.Where("user_id = ?", owner).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

func (s *DBStore) findCart(owner string) (models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", owner).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cart, ErrItemNotFound
	}
	return cart, err
}

func (s *DBStore) findOrCreateCart(owner string) (models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", owner).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: owner}
		err = s.db.Create(&cart).Error
	}
	return cart, err
}

func lineFromModel(item models.CartItem) Line {
	return Line{
		ID:           item.ID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductImage: item.ProductImage,
		UnitPrice:    item.UnitPrice,
		Size:         item.Size,
		Color:        item.Color,
		Quantity:     item.Quantity,
		AddedAt:      item.AddedAt,
	}
}
