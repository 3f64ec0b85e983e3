package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product matches an identifier
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoDataSources is returned when none of the configured product sources could be read
	ErrNoDataSources = errors.New("no readable product sources")

	// ErrSourceUnreadable is returned when a single tabular source cannot be opened or parsed
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUnauthorized is returned when a request carries no user identity
	ErrUnauthorized = errors.New("user identity required")

	// ErrForbidden is returned when an admin operation is attempted without a valid token
	ErrForbidden = errors.New("admin token required")

	// ErrWishlistDuplicate is returned when a product is already on the user's wishlist
	ErrWishlistDuplicate = errors.New("product already in wishlist")

	// ErrWishlistItemNotFound is returned when a wishlist item does not exist for the user
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)
