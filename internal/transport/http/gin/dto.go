package httpgin

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SaveEventRequest struct {
	Title         string            `json:"title" binding:"required"`
	Location      string            `json:"location"`
	SetupStart    string            `json:"setupStart"`
	EventStart    string            `json:"eventStart"`
	EventEnd      string            `json:"eventEnd"`
	TeardownEnd   string            `json:"teardownEnd"`
	AssignedUsers []string          `json:"assignedUsers"`
	BookedItems   []BookedItemInput `json:"bookedItems"`
}

type BookedItemInput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price"`
}

type SaveEventResponse struct {
	EventID string `json:"event_id"`
}

type LedgerRequest struct {
	Lines  []BookedItemInput `json:"lines"`
	Action LedgerActionInput `json:"action" binding:"required"`
}

type LedgerActionInput struct {
	Type     string `json:"type" binding:"required"`
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	BundleID string `json:"bundle_id"`
}

type CreateItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	RentPrice float64 `json:"rentPrice"`
	Stock     int     `json:"stock"`
}

type CreateItemResponse struct {
	ItemID string `json:"item_id"`
}

type CreateBundleRequest struct {
	Name  string                `json:"name" binding:"required"`
	Items []BundleItemSelection `json:"items" binding:"required,min=1,dive"`
}

type BundleItemSelection struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateBundleResponse struct {
	BundleID string `json:"bundle_id"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type CreateUserResponse struct {
	UserID string `json:"user_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
