package invoice

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyshop/internal/intent"
)

func testIntent() *intent.PurchaseIntent {
	return &intent.PurchaseIntent{
		ID:           "3f2a9c11-0000-0000-0000-000000000000",
		ProductID:    "p1",
		ProductTitle: "Cheatloop PUBG",
		Email:        "buyer@example.com",
		CreatedAt:    time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderContainsOrderData(t *testing.T) {
	html, err := Render(testIntent(), "KEY-1234-ABCD", map[string]string{"site_name": "cheatloop.shop"}, 49.99, &Template{
		BrandName:   "cheatloop",
		CompanyName: "Cheatloop",
		AccentColor: "#06b6d4",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "KEY-1234-ABCD")
	assert.Contains(t, html, "buyer@example.com")
	assert.Contains(t, html, "Cheatloop PUBG")
	assert.Contains(t, html, "$49.99")
	assert.Contains(t, html, "cheatloop.shop")
	assert.Contains(t, html, "INV-3f2a9c11")
	assert.Contains(t, html, "14.03.2025")
}

func TestRenderFallsBackToDefaultBranding(t *testing.T) {
	// без шаблона
	html, err := Render(testIntent(), "KEY-1", nil, 10, nil)
	require.NoError(t, err)
	assert.Contains(t, html, defaultTemplate.CompanyName)
	assert.Contains(t, html, defaultTemplate.AccentColor)

	// шаблон с пустыми полями добивается дефолтами
	html, err = Render(testIntent(), "KEY-1", nil, 10, &Template{BrandName: "sinki"})
	require.NoError(t, err)
	assert.Contains(t, html, defaultTemplate.CompanyName)
	assert.Contains(t, html, defaultTemplate.FooterNote)
}

func TestRenderRequiresIntentAndKey(t *testing.T) {
	_, err := Render(nil, "KEY-1", nil, 10, nil)
	assert.Error(t, err)

	_, err = Render(testIntent(), "", nil, 10, nil)
	assert.Error(t, err)
}

func TestRenderEscapesUserInput(t *testing.T) {
	it := testIntent()
	it.Email = `<script>alert(1)</script>@x.com`

	html, err := Render(it, "KEY-1", nil, 10, nil)
	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "<script>alert(1)</script>"))
}

func TestBrandForTitle(t *testing.T) {
	assert.Equal(t, "sinki", BrandForTitle("Sinki Premium"))
	assert.Equal(t, "cheatloop", BrandForTitle("Cheatloop PUBG"))
	assert.Equal(t, "cheatloop", BrandForTitle("Something Else"))
}
