package controllers

import "farmigo/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserSchema struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type TokenResponse struct {
	SignedToken string     `json:"token"`
	User        UserSchema `json:"user"`
}

type CropRefSchema struct {
	ID   *uint  `json:"id"`
	Name string `json:"name"`
}

type InventoryItemSchema struct {
	ID        uint          `json:"id"`
	Crop      CropRefSchema `json:"crop"`
	Price     float64       `json:"price"`
	Quantity  int           `json:"quantity"`
	Available bool          `json:"available"`
	ImageURL  string        `json:"imageUrl"`
}

type MarketItemSchema struct {
	ID       uint          `json:"id"`
	Crop     CropRefSchema `json:"crop"`
	Price    float64       `json:"price"`
	Quantity int           `json:"quantity"`
	FarmerID uint          `json:"farmerId"`
	ImageURL string        `json:"imageUrl"`
}

type CropSchema struct {
	ID          *uint  `json:"id"`
	Crop        string `json:"crop"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateInventoryPayload struct {
	CropName string   `json:"cropName"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
	ImageURL string   `json:"imageUrl"`
}

type UpdateInventoryPayload struct {
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
	Available *bool    `json:"available"`
	ImageURL  *string  `json:"imageUrl"`
}

type OrderLinePayload struct {
	InventoryID uint `json:"inventoryId"`
	Quantity    int  `json:"quantity"`
}

type OrderPayload struct {
	Items []OrderLinePayload `json:"items"`
}

type OrderResponse struct {
	OrderID uint    `json:"orderId"`
	Total   float64 `json:"total"`
}

type MonthlySalesSchema struct {
	Month string  `json:"month"`
	Year  int     `json:"year"`
	Sales float64 `json:"sales"`
}

type CropDemandSchema struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type TopFarmerSchema struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type StatsSchema struct {
	NumFarmers     int64                `json:"numFarmers"`
	NumCustomers   int64                `json:"numCustomers"`
	TotalSales     float64              `json:"totalSales"`
	ItemsSold      int64                `json:"itemsSold"`
	ActiveListings int64                `json:"activeListings"`
	MonthlySales   []MonthlySalesSchema `json:"monthlySales"`
	CropsInDemand  []CropDemandSchema   `json:"cropsInDemand"`
	TopFarmers     []TopFarmerSchema    `json:"topFarmers"`
}

type RecommendationSchema struct {
	RecommendedCrops []string `json:"recommendedCrops"`
	SuggestedManure  string   `json:"suggestedManure"`
	Basis            string   `json:"basis"`
}

type ChatPayload struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type DiseaseReportSchema struct {
	Title            string   `json:"title"`
	Disease          string   `json:"disease"`
	ConfidencePct    float64  `json:"confidencePct"`
	Summary          string   `json:"summary"`
	ImmediateActions []string `json:"immediateActions"`
	TreatmentPlan    []string `json:"treatmentPlan"`
	Prevention       []string `json:"prevention"`
	Advice           string   `json:"advice"`
	AnalyzedAt       string   `json:"analyzedAt"`
	Image            string   `json:"image"`
	EditedImage      *string  `json:"editedImage"`
}

type DiseaseResultSchema struct {
	Disease      string              `json:"disease"`
	Confidence   float64             `json:"confidence"`
	Advice       string              `json:"advice"`
	Image        string              `json:"image"`
	EditedImage  *string             `json:"editedImage"`
	PromptUsed   string              `json:"promptUsed"`
	LeafDetected bool                `json:"leafDetected"`
	Report       DiseaseReportSchema `json:"report"`
}
