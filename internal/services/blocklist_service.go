package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/repositories"
)

// BlocklistService manages the set of numbers the market refuses. Inputs
// that do not expand to well-formed two-digit numbers are silently dropped;
// this is documented permissive behavior, not an error.
type BlocklistService struct {
	blocklistRepo repositories.BlocklistRepository
}

// NewBlocklistService creates a new BlocklistService
func NewBlocklistService(blocklistRepo repositories.BlocklistRepository) *BlocklistService {
	return &BlocklistService{blocklistRepo: blocklistRepo}
}

// ExpandBlockRange expands a block request into candidate two-digit numbers.
// Malformed candidates are filtered out before storage.
func ExpandBlockRange(kind models.BlockKind, value string) []string {
	value = strings.TrimSpace(value)
	var candidates []string
	switch kind {
	case models.BlockDirect:
		if len(value) == 1 {
			value = "0" + value
		}
		candidates = []string{value}
	case models.BlockHead:
		for i := 0; i < 10; i++ {
			candidates = append(candidates, fmt.Sprintf("%s%d", value, i))
		}
	case models.BlockTail:
		for i := 0; i < 10; i++ {
			candidates = append(candidates, fmt.Sprintf("%d%s", i, value))
		}
	}

	numbers := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if isTwoDigit(c) {
			numbers = append(numbers, c)
		}
	}
	return numbers
}

func isTwoDigit(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsBlocked checks whether a number is currently refused
func (s *BlocklistService) IsBlocked(ctx context.Context, number string) (bool, error) {
	return s.blocklistRepo.IsBlocked(ctx, number)
}

// Block expands the request and stores every well-formed number. An input
// that expands to nothing is a silent no-op.
func (s *BlocklistService) Block(ctx context.Context, kind models.BlockKind, value string) ([]string, error) {
	numbers := ExpandBlockRange(kind, value)
	if len(numbers) == 0 {
		return nil, nil
	}
	if err := s.blocklistRepo.AddAll(ctx, numbers); err != nil {
		return nil, fmt.Errorf("failed to add block entries: %w", err)
	}
	return numbers, nil
}

// Unblock removes a single number
func (s *BlocklistService) Unblock(ctx context.Context, number string) error {
	return s.blocklistRepo.Remove(ctx, number)
}

// Clear removes every blocked number
func (s *BlocklistService) Clear(ctx context.Context) error {
	return s.blocklistRepo.Clear(ctx)
}

// List returns the blocked numbers
func (s *BlocklistService) List(ctx context.Context) ([]string, error) {
	return s.blocklistRepo.FindAll(ctx)
}
