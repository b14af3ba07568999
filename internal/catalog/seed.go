package catalog

import "github.com/palstyle/storefront/internal/domain"

// SeedProducts is the startup catalog loaded into an empty repository.
var SeedProducts = []domain.Product{
	{
		ID:          "PLS-SLV-104",
		Name:        "PALESTINE MAP SILVER NECKLACE",
		Price:       1499,
		Category:    "Accessories",
		ImageURL:    "https://cdn.dsmcdn.com/ty1792/prod/QC_PREP/20251120/03/8d048687-8044-366c-8a80-31955b45c132/1_org_zoom.jpg",
		Description: "925 Sterling Silver. A symbol of existence and resilience. Minimalist design without stones. Unisex architecture.",
		Stock:       25,
	},
	{
		ID:          "PLS-SLV-103",
		Name:        "FREE PALESTINE MAP NECKLACE",
		Price:       1499,
		Category:    "Accessories",
		ImageURL:    "https://cdn.dsmcdn.com/ty1793/prod/QC_PREP/20251120/02/1dc4301e-b1d5-3b4f-8238-47b4845d8327/1_org_zoom.jpg",
		Description: "Local production reflecting quality standards. 925 Sterling Silver. Long-lasting use and stylish appearance.",
		Stock:       23,
	},
	{
		ID:          "PLS-SLV-102",
		Name:        "GAZA RESISTANCE SYMBOL",
		Price:       1499,
		Category:    "Accessories",
		ImageURL:    "https://cdn.dsmcdn.com/ty1790/prod/QC_PREP/20251116/17/94b88496-42d6-3b2c-b200-f0bf70f1f1a2/1_org_zoom.jpg",
		Description: "Filistin Direniş Simgesi. 925 Sterling Silver. Minimalist design for those seeking refined style.",
		Stock:       30,
	},
	{
		ID:          "PLS-TSH-105",
		Name:        "NEWSPAPER RESISTANCE TEE",
		Price:       599,
		Category:    "T-Shirts",
		ImageURL:    "https://cdn.dsmcdn.com/ty1790/prod/QC_PREP/20251114/21/22c59b8a-9342-36bd-b2d1-c39695d61993/1_org_zoom.jpg",
		Description: "Unisex oversize fit. Breathable knitted fabric. A statement of history and resistance worn on the chest.",
		Stock:       15,
	},
	{
		ID:          "PLS-TSH-104",
		Name:        "JERUSALEM HERITAGE TEE",
		Price:       699,
		Category:    "T-Shirts",
		ImageURL:    "https://cdn.dsmcdn.com/ty1790/prod/QC_PREP/20251114/20/509e599e-3d2f-3dff-afc9-e50633d9e4b8/1_org_zoom.jpg",
		Description: "Filistin Mirası. Oversize comfort. Sustainable fashion approach supporting local craftsmanship.",
		Stock:       30,
	},
	{
		ID:          "PLS-TSH-102",
		Name:        "MUSIC PLAY ICON OVERSIZE",
		Price:       599,
		Category:    "T-Shirts",
		ImageURL:    "https://cdn.dsmcdn.com/ty1789/prod/QC_PREP/20251114/19/058542f2-991b-3bd2-9adb-2745b7604e38/1_org_zoom.jpg",
		Description: "The rhythm of resistance. Unisex design suitable for all. High quality cotton blend.",
		Stock:       4,
	},
	{
		ID:          "PLS-HOD-112",
		Name:        "GAZA SQUAD HOODIE",
		Price:       899,
		Category:    "Hoodies",
		ImageURL:    "https://cdn.dsmcdn.com/ty1786/prod/QC_PREP/20251111/17/74b5be6e-764a-35db-b93b-f0082a335682/1_org_zoom.jpg",
		Description: "Unisex Oversize. Spirit of Gaza DTF print. 3-thread weaving for durability and warmth.",
		Stock:       39,
	},
	{
		ID:          "PLS-HOD-111",
		Name:        "MARIO STREET HOODIE",
		Price:       899,
		Category:    "Hoodies",
		ImageURL:    "https://cdn.dsmcdn.com/ty1786/prod/QC_PREP/20251110/01/eb017650-5907-3968-aafe-d98fa10ceb85/1_org_zoom.jpg",
		Description: "Filistin Sokak Modası. Modern oversize silhouette. Hooded protection for the cold urban environment.",
		Stock:       50,
	},
	{
		ID:          "PLS-HOD-109",
		Name:        "TATREEZ PATCH HOODIE",
		Price:       899,
		Category:    "Hoodies",
		ImageURL:    "https://cdn.dsmcdn.com/ty1786/prod/QC_PREP/20251110/00/6d060f4c-20de-37ec-b292-3f34cf8d8b13/1_org_zoom.jpg",
		Description: "Embroidered with the threads of history. 3-thread fabric. High contrast aesthetic.",
		Stock:       10,
	},
	{
		ID:          "PLS-HOD-107",
		Name:        "JERUSALEM MAP HOODIE",
		Price:       1200,
		Category:    "Hoodies",
		ImageURL:    "https://cdn.dsmcdn.com/ty1786/prod/QC_ENRICHMENT/20251110/20/161a3bd1-276b-3e36-a04b-dbb4918e53b9/1_org_zoom.jpg",
		Description: "Map Design. Khaki/Black tones. Casual style with heavy durability.",
		Stock:       40,
	},
}
