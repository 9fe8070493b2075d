package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordguess-backend/internal/entity"
)

func TestIsPlayable(t *testing.T) {
	assert.True(t, IsPlayable("apple"))
	assert.True(t, IsPlayable("sun"))

	assert.False(t, IsPlayable("at"))
	assert.False(t, IsPlayable("ice cream"))
	assert.False(t, IsPlayable("well-known"))
	assert.False(t, IsPlayable(""))
}

func TestSelectValidWord(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("Picks a playable candidate", func(t *testing.T) {
		// Given: a batch with a single valid candidate
		candidates := []entity.CandidateWord{
			{Word: "Apple", Score: 100},
		}

		// When: selecting with the default retry bound
		word, ok := SelectValidWord(candidates, 5, rng)

		// Then: the pick is normalized to lowercase
		require.True(t, ok)
		assert.Equal(t, "apple", word)
	})

	t.Run("Fails on an empty batch", func(t *testing.T) {
		word, ok := SelectValidWord(nil, 5, rng)

		require.False(t, ok)
		assert.Empty(t, word)
	})

	t.Run("Gives up after the retry bound when nothing is playable", func(t *testing.T) {
		// Given: a batch of candidates that all fail validation
		candidates := []entity.CandidateWord{
			{Word: "at"},
			{Word: "ice cream"},
			{Word: "well-known"},
		}

		// When: selecting
		word, ok := SelectValidWord(candidates, 5, rng)

		// Then: no word is produced
		require.False(t, ok)
		assert.Empty(t, word)
	})

	t.Run("Keeps redrawing until a playable candidate comes up", func(t *testing.T) {
		// Given: a batch that is mostly invalid
		candidates := []entity.CandidateWord{
			{Word: "an"},
			{Word: "of"},
			{Word: "orange"},
		}

		// When: selecting many times
		found := false
		for i := 0; i < 50 && !found; i++ {
			if word, ok := SelectValidWord(candidates, 5, rng); ok {
				assert.Equal(t, "orange", word)
				found = true
			}
		}

		// Then: the valid candidate is eventually drawn
		assert.True(t, found)
	})
}

func TestChooseHintWord(t *testing.T) {
	t.Run("Prefers a candidate of exactly the secret's length", func(t *testing.T) {
		candidates := []entity.CandidateWord{
			{Word: "fruit salad"},
			{Word: "pear"},
			{Word: "mango"},
		}

		hint, ok := ChooseHintWord(candidates, "apple")

		require.True(t, ok)
		assert.Equal(t, "mango", hint)
	})

	t.Run("Falls back to any candidate longer than two characters", func(t *testing.T) {
		candidates := []entity.CandidateWord{
			{Word: "ox"},
			{Word: "pear"},
		}

		hint, ok := ChooseHintWord(candidates, "apple")

		require.True(t, ok)
		assert.Equal(t, "pear", hint)
	})

	t.Run("Never picks the secret word itself", func(t *testing.T) {
		candidates := []entity.CandidateWord{
			{Word: "Apple"},
			{Word: "melon"},
		}

		hint, ok := ChooseHintWord(candidates, "apple")

		require.True(t, ok)
		assert.Equal(t, "melon", hint)
	})

	t.Run("Reports failure when nothing qualifies", func(t *testing.T) {
		candidates := []entity.CandidateWord{
			{Word: "apple"},
			{Word: "ox"},
			{Word: "red apple"},
		}

		hint, ok := ChooseHintWord(candidates, "apple")

		require.False(t, ok)
		assert.Empty(t, hint)
	})
}
