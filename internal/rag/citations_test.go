package rag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/triage-gateway/internal/rag"
)

func TestExtractCitations_Positional(t *testing.T) {
	docs := testDocs()

	citations := rag.ExtractCitations("Per [Source 1], readings below 120/80 are normal. See also [Source 2].", docs)

	require.Len(t, citations, 2)
	assert.Equal(t, "Hypertension Overview", citations["1"].Title)
	assert.Equal(t, "Medication Safety", citations["2"].Title)
	assert.Equal(t, "internal-kb", citations["1"].Source)
	assert.Equal(t, "conditions", citations["1"].Category)
}

func TestExtractCitations_RepeatedMarkerCountsOnce(t *testing.T) {
	citations := rag.ExtractCitations("[Source 1] and again [Source 1].", testDocs())

	require.Len(t, citations, 1)
	assert.Equal(t, "Hypertension Overview", citations["1"].Title)
}

func TestExtractCitations_OutOfRangeIgnored(t *testing.T) {
	citations := rag.ExtractCitations("See [Source 7] and [Source 0].", testDocs())

	assert.Nil(t, citations)
}

func TestExtractCitations_NoMarkers(t *testing.T) {
	assert.Nil(t, rag.ExtractCitations("No citations in this answer.", testDocs()))
}

func TestExtractCitations_NoDocuments(t *testing.T) {
	assert.Nil(t, rag.ExtractCitations("Made up [Source 1] marker.", nil))
}
