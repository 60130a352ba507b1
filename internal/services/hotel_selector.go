package services

import (
	"math/rand"
	"sync"

	"github.com/bkoseoglu/visadesk-backend/internal/types"
)

// HotelSelector picks one hotel from a candidate set. The policy is
// swappable so the pick strategy can change without touching generation.
type HotelSelector interface {
	Pick(hotels []*types.BookingHotel) *types.BookingHotel
}

// RandomHotelSelector picks uniformly at random, so applications drawing
// from the same template pool don't all end up with the same hotel.
type RandomHotelSelector struct{}

func NewRandomHotelSelector() *RandomHotelSelector {
	return &RandomHotelSelector{}
}

func (s *RandomHotelSelector) Pick(hotels []*types.BookingHotel) *types.BookingHotel {
	if len(hotels) == 0 {
		return nil
	}
	return hotels[rand.Intn(len(hotels))]
}

// RoundRobinHotelSelector cycles through candidates in order.
type RoundRobinHotelSelector struct {
	mu   sync.Mutex
	next int
}

func NewRoundRobinHotelSelector() *RoundRobinHotelSelector {
	return &RoundRobinHotelSelector{}
}

func (s *RoundRobinHotelSelector) Pick(hotels []*types.BookingHotel) *types.BookingHotel {
	if len(hotels) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	hotel := hotels[s.next%len(hotels)]
	s.next++
	return hotel
}
