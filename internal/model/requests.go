package model

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type StatusRequest struct {
	OrderID   string `json:"orderId"`
	StoreName string `json:"storeName"`
}

type WaybillRequest struct {
	OrderID   string `json:"orderId"`
	StoreName string `json:"storeName"`
	OrderCode string `json:"orderCode"`
}

type WaybillResponse struct {
	Waybill string `json:"waybill"`
}

type CustomStatusRequest struct {
	Status Status `json:"status"`
}

type CustomStatusResponse struct {
	CustomStatus Status `json:"customStatus"`
}

type SecurityCodeRequest struct {
	OrderID   string `json:"orderId"`
	StoreName string `json:"storeName"`
	OrderCode string `json:"orderCode"`
}

type CompleteOrderRequest struct {
	OrderID      string `json:"orderId"`
	StoreName    string `json:"storeName"`
	OrderCode    string `json:"orderCode"`
	SecurityCode string `json:"securityCode"`
}

type CompletedOrder struct {
	Data struct {
		Type       string `json:"type"`
		ID         string `json:"id"`
		Attributes struct {
			Code   string `json:"code"`
			Status string `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
}

type CompleteCodeInput struct {
	Code string `json:"code"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type CommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type CreateStoreRequest struct {
	Name   string `json:"name"`
	APIKey string `json:"apiKey"`
}

type CreateUserRequest struct {
	Username        string   `json:"username"`
	Name            string   `json:"name"`
	Password        string   `json:"password"`
	AllowedStatuses []string `json:"allowedStatuses"`
	AllowedCities   []string `json:"allowedCities"`
}

type UpdateAllowedStatusesRequest struct {
	UserID          string   `json:"userId"`
	AllowedStatuses []string `json:"allowedStatuses"`
}

type UpdateAllowedCitiesRequest struct {
	UserID        string   `json:"userId"`
	AllowedCities []string `json:"allowedCities"`
}

type UpdateAllowedStoresRequest struct {
	UserID        string   `json:"userId"`
	AllowedStores []string `json:"allowedStores"`
}
