package store

import (
	"time"

	"spiritedlamb/internal/model"
)

// Seed builds the compiled-in catalog. Event dates are relative to now so
// the calendar always has something upcoming; times are wall-clock in now's
// location.
func Seed(now time.Time) *Store {
	return MustNew(SeedCatalog(now))
}

func SeedCatalog(now time.Time) Catalog {
	return Catalog{
		Events:  seedEvents(now),
		Shop:    shopItems,
		Groups:  recurringGroups,
		Hero:    heroImages,
		Pillars: pillars,
		Media:   media,
	}
}

// at returns the wall-clock time hh:mm on now's date shifted by days.
func at(now time.Time, days, hh, mm int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+days, hh, mm, 0, 0, now.Location())
}

func seedEvents(now time.Time) []model.Event {
	return []model.Event{
		{
			ID:          "1",
			Title:       "Beach Rosary & Sunrise",
			Description: "Gather for a morning Rosary on the sand at San Buenaventura State Beach, followed by coffee and fellowship.",
			Start:       at(now, 0, 7, 0),
			End:         at(now, 0, 9, 0),
			ParishName:  "San Buenaventura State Beach",
			Address:     "901 San Pedro St",
			City:        "Ventura",
			County:      model.CountyVentura,
			Lat:         34.2721,
			Lng:         -119.2801,
			Tags:        []string{"Rosary", "Beach", "Prayer"},
			Type:        model.TypePrayer,
			ImageURL:    "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "2",
			Title:       "Ventura Theology on Tap",
			Description: "Deep dive into **Catholic Social Teaching** over local craft beers. All Ventura young adults welcome.",
			Start:       at(now, 2, 19, 0),
			End:         at(now, 2, 21, 0),
			ParishName:  "Transmission Brewing",
			Address:     "1098 E Front St",
			City:        "Ventura",
			County:      model.CountyVentura,
			Lat:         34.2798,
			Lng:         -119.2861,
			Tags:        []string{"Talk", "Social", "Theology"},
			Type:        model.TypeSocial,
			ImageURL:    "https://images.unsplash.com/photo-1514525253344-f814d874591a?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "3",
			Title:       "St. Thomas YA Potluck",
			Description: "Community dinner and game night following the evening Mass. Bring a dish to share!",
			Start:       at(now, 5, 18, 30),
			End:         at(now, 5, 21, 0),
			ParishName:  "St. Thomas Aquinas Church",
			Address:     "185 St Thomas Dr",
			City:        "Ojai",
			County:      model.CountyVentura,
			Lat:         34.4367,
			Lng:         -119.2312,
			Tags:        []string{"Community", "Dinner", "Social"},
			Type:        model.TypeSocial,
			ImageURL:    "https://images.unsplash.com/photo-1559339352-11d035aa65de?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:          "4",
			Title:       "Ventura River Trail Hike",
			Description: "An active morning of hiking and outdoor prayer along the beautiful river trail.",
			Start:       at(now, 7, 8, 0),
			End:         at(now, 7, 11, 0),
			ParishName:  "River Trailhead",
			Address:     "Foster Park",
			City:        "Ventura",
			County:      model.CountyVentura,
			Lat:         34.3541,
			Lng:         -119.3094,
			Tags:        []string{"Hiking", "Active", "Service"},
			Type:        model.TypeService,
			ImageURL:    "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?auto=format&fit=crop&q=80&w=800",
		},
	}
}

var recurringGroups = []model.RecurringGroup{
	{
		ID:          "g1",
		Name:        "Ventura Catholic YA",
		Description: "The central hub for young adults in the city of Ventura focused on spiritual growth.",
		County:      model.CountyVentura,
		Focus:       "Prayer/Social",
		Website:     "https://venturacatholicya.org",
	},
	{
		ID:          "g2",
		Name:        "TAC Alumni Network",
		Description: "A dedicated group of Thomas Aquinas College alumni living and working in Ventura County.",
		County:      model.CountyVentura,
		Focus:       "Study/Fellowship",
		Website:     "https://thomasaquinas.edu",
	},
}

var shopItems = []model.ShopItem{
	{
		ID:       "s1",
		Name:     "Signature Lamb Hoodie",
		Price:    "$55",
		Category: model.ShopApparel,
		ImageURL: "https://images.unsplash.com/photo-1556821840-3a63f95609a7?auto=format&fit=crop&q=80&w=800",
	},
	{
		ID:       "s4",
		Name:     "Unity Cotton Tee",
		Price:    "$32",
		Category: model.ShopApparel,
		ImageURL: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=800",
	},
}

var heroImages = []model.HeroImage{
	{URL: "https://mlptyjrdcsxoojvszlbn.supabase.co/storage/v1/object/public/SLWeb/jqs7kv1shsrmy0cvx6btn17cyr.png", Label: "Sacrifice"},
	{URL: "https://mlptyjrdcsxoojvszlbn.supabase.co/storage/v1/object/public/SLWeb/ey4tftzcjsrmw0cvx6cs3vxw50.png", Label: "Sanctity"},
	{URL: "https://mlptyjrdcsxoojvszlbn.supabase.co/storage/v1/object/public/SLWeb/sjrpkf863nrmt0cvx6ct53sbym.png", Label: "Service"},
}

var pillars = []model.Pillar{
	{Title: "Spirituality", Desc: "San Buenaventura Life", Image: "https://images.unsplash.com/photo-1544427920-c49ccfb85579?auto=format&fit=crop&q=80&w=1200"},
	{Title: "Action", Desc: "Coastal Mission", Image: "https://images.unsplash.com/photo-1551632811-561732d1e306?auto=format&fit=crop&q=80&w=800"},
	{Title: "Connection", Desc: "Local Fellowship", Image: "https://images.unsplash.com/photo-1517486808906-6ca8b3f04846?auto=format&fit=crop&q=80&w=800"},
}

var media = []model.MediaLink{
	{Kind: "podcast", Title: "The Lamb Podcast", Desc: "Conversations on faith and life along the coast.", URL: "https://open.spotify.com"},
	{Kind: "video", Title: "Ventura Sessions", Desc: "Ventura Playlist", URL: "https://www.youtube.com", Image: "https://images.unsplash.com/photo-1493225255756-d9584f8606e9?auto=format&fit=crop&q=80&w=1200"},
	{Kind: "instagram", Title: "@spiritedlamb", URL: "https://www.instagram.com", Image: "https://images.unsplash.com/photo-1517486808906-6ca8b3f04846?auto=format&fit=crop&q=80&w=400"},
	{Kind: "instagram", Title: "@spiritedlamb", URL: "https://www.instagram.com", Image: "https://images.unsplash.com/photo-1551632811-561732d1e306?auto=format&fit=crop&q=80&w=400"},
}
