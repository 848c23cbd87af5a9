package bcrypt

import "golang.org/x/crypto/bcrypt"

type IBcrypt interface {
	HashPassword(password string) (string, error)
	Matches(hashPassword string, password string) bool
}

type bcryptService struct {
	cost int
}

func New() IBcrypt {
	return NewWithCost(bcrypt.DefaultCost)
}

// NewWithCost clamps cost into the range bcrypt accepts.
func NewWithCost(cost int) IBcrypt {
	switch {
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &bcryptService{cost: cost}
}

func (b *bcryptService) HashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func (b *bcryptService) Matches(hashPassword string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(password)) == nil
}
