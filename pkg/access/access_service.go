package access

import (
	"context"

	"github.com/google/uuid"

	"qrqaema/domain"
)

type (
	// Policy is the single authorization predicate for restaurant-scoped
	// resources. Handlers and services must go through it rather than
	// re-deriving membership themselves.
	Policy interface {
		CanManage(ctx context.Context, userID, restaurantID uuid.UUID) error
		RequireOwner(ctx context.Context, userID, restaurantID uuid.UUID) error
		IsSuperuser(ctx context.Context, userID uuid.UUID) (bool, error)
		Role(ctx context.Context, userID, restaurantID uuid.UUID) (string, error)
	}

	policy struct {
		accessRepository AccessRepository
	}
)

func NewPolicy(accessRepository AccessRepository) Policy {
	return &policy{accessRepository: accessRepository}
}

// CanManage allows the owner, any staff member, and superusers.
func (p *policy) CanManage(ctx context.Context, userID, restaurantID uuid.UUID) error {
	role, err := p.Role(ctx, userID, restaurantID)
	if err != nil {
		return err
	}
	if role == "" {
		return domain.ErrForbidden
	}
	return nil
}

func (p *policy) RequireOwner(ctx context.Context, userID, restaurantID uuid.UUID) error {
	restaurant, err := p.accessRepository.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.OwnerID != nil && *restaurant.OwnerID == userID {
		return nil
	}
	if ok, err := p.IsSuperuser(ctx, userID); err == nil && ok {
		return nil
	}
	return domain.ErrNotOwner
}

func (p *policy) IsSuperuser(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := p.accessRepository.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsSuperuser, nil
}

// Role reports the caller's relationship to the restaurant: owner,
// staff, or empty when there is none. Superusers are reported as owner.
func (p *policy) Role(ctx context.Context, userID, restaurantID uuid.UUID) (string, error) {
	restaurant, err := p.accessRepository.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return "", err
	}
	if restaurant.OwnerID != nil && *restaurant.OwnerID == userID {
		return domain.RoleOwner, nil
	}

	isStaff, err := p.accessRepository.IsStaff(ctx, restaurantID, userID)
	if err != nil {
		return "", err
	}
	if isStaff {
		return domain.RoleStaff, nil
	}

	if ok, err := p.IsSuperuser(ctx, userID); err == nil && ok {
		return domain.RoleOwner, nil
	}
	return "", nil
}
