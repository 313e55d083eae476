package platform

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	MobileNo         string `json:"mobile_no"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Email            string `json:"email,omitempty"`
	ReferralCodeUsed string `json:"referral_code_used,omitempty"`
}

// RegisteredUser is the response of POST /auth/register
type RegisteredUser struct {
	ID       int    `json:"id"`
	MobileNo string `json:"mobile_no"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	MobileNo string `json:"mobile_no"`
	Password string `json:"password"`
}

// LoginResponse is the response of POST /auth/login
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Username     string `json:"username"`
	MobileNo     string `json:"mobile_no"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	ReferralCode string `json:"referral_code"`
}

type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProductBasic is the catalog identity half of a remote product
type ProductBasic struct {
	ID        int    `json:"id"`
	ProductID string `json:"product_id"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Type      string `json:"type"`
}

// ProductDetails is the pricing and content half of a remote product
type ProductDetails struct {
	Description    string          `json:"description"`
	Features       []string        `json:"features"`
	Specifications []Specification `json:"specifications"`
	Images         []string        `json:"images"`
	Price          float64         `json:"price"`
	ActualPrice    float64         `json:"actual_price"`
	Profit         float64         `json:"profit"`
	Margin         float64         `json:"margin"`
	Points         int             `json:"points"`
}

// ProductOut is one product as the remote API returns it
type ProductOut struct {
	Basic   ProductBasic   `json:"basic"`
	Details ProductDetails `json:"details"`
}

// CreateProductRequest is the body of POST /admin/products
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Type           string          `json:"type"`
	Description    string          `json:"description,omitempty"`
	Features       []string        `json:"features"`
	Specifications []Specification `json:"specifications"`
	Images         []string        `json:"images"`
	Price          float64         `json:"price"`
	ActualPrice    float64         `json:"actual_price"`
	Points         int             `json:"points"`
}

type OrderData struct {
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

type BillingData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// CreateOrderRequest is the body of POST /orders/create
type CreateOrderRequest struct {
	OrderData   OrderData   `json:"order_data"`
	BillingData BillingData `json:"billing_data"`
}

// CreateOrderResponse carries the server-assigned ids, normalized to strings
type CreateOrderResponse struct {
	OrderID   string `json:"order_id"`
	BillingID string `json:"billing_id"`
	Message   string `json:"message"`
}

type RemoteBilling struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type RemoteProductRef struct {
	ID     int      `json:"id"`
	Images []string `json:"images"`
}

// RemoteOrder is one entry of GET /orders/all
type RemoteOrder struct {
	ID             int               `json:"id"`
	ProductID      string            `json:"product_id"`
	Quantity       int               `json:"quantity"`
	TotalPrice     float64           `json:"total_price"`
	Status         string            `json:"status"`
	CreatedAt      string            `json:"created_at"`
	BillingDetails *RemoteBilling    `json:"billing_details"`
	ProductDetails *RemoteProductRef `json:"product_details"`
}
