package engine

import (
	"iter"
	"slices"
)

// Deck is a draw pile plus a discard pile. Cards only move between the two
// piles and the caller; nothing is ever lost.
type Deck[T any] struct {
	deck    []T
	discard []T
}

// NewDeck creates a deck whose top card is the last element of cards.
func NewDeck[T any](cards []T) *Deck[T] {
	d := &Deck[T]{deck: make([]T, len(cards))}
	copy(d.deck, cards)
	return d
}

// Draw takes the top card. An empty draw pile is refilled from the discard
// pile first; ok is false only when both piles are empty.
func (d *Deck[T]) Draw() (card T, ok bool) {
	if len(d.deck) == 0 {
		d.deck, d.discard = d.discard, d.deck[:0]
		slices.Reverse(d.deck)
	}
	if len(d.deck) == 0 {
		return card, false
	}
	last := len(d.deck) - 1
	card = d.deck[last]
	d.deck = d.deck[:last]
	return card, true
}

// DrawMany lazily yields at most n cards, stopping early if the deck runs out.
func (d *Deck[T]) DrawMany(n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for range n {
			card, ok := d.Draw()
			if !ok || !yield(card) {
				return
			}
		}
	}
}

// DrawN draws up to n cards into a slice.
func (d *Deck[T]) DrawN(n int) []T {
	return slices.Collect(d.DrawMany(n))
}

func (d *Deck[T]) DiscardToBottom(card T) {
	d.discard = append(d.discard, card)
}

// Shuffle merges the discard pile into the draw pile and randomizes it.
func (d *Deck[T]) Shuffle(rng *Prng) {
	d.deck = append(d.deck, d.discard...)
	d.discard = nil
	ShuffleSlice(rng, d.deck)
}

// Size is the number of cards across both piles.
func (d *Deck[T]) Size() int {
	return len(d.deck) + len(d.discard)
}

func (d *Deck[T]) DrawPileLen() int    { return len(d.deck) }
func (d *Deck[T]) DiscardPileLen() int { return len(d.discard) }
