package constants

// ユーザーロール
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// コンテキストキー
const (
	IdentityKey  = "identity"
	RequestIDKey = "request_id"
)

// WWW-Authenticate realms
const (
	RealmLogin = `Basic realm="Need to login"`
	RealmAdmin = `Basic realm="Admin access required"`
)

// 画面に出すメッセージ
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgDatabaseError       = "Database error, try again."
	MsgUsernameTaken       = "Username already taken"
	MsgRegisterFailed      = "Error registering user"
	MsgRegistered          = "Registration successful! Please log in."
	MsgInvalidLogin        = "Invalid username or password"
	MsgReviewSubmitted     = "Review submitted successfully"
	MsgAdminRequired       = "<h2>ERROR: Admin Privileges Required To See Users</h2>"
)

// エラーメッセージ
const (
	ErrUnauthorized        = "Unauthorized"
	ErrInvalidCredentials  = "Invalid credentials"
	ErrInvalidAuthFormat   = "Invalid authentication format"
	ErrInternal            = "Internal server error"
	ErrUnexpected          = "Something broke!"
	ErrNotAuthenticated    = "Not authenticated"
	ErrInvalidJSON         = "Invalid JSON data"
	ErrDatabase            = "Database error"
	ErrFetchReviews        = "Failed to fetch reviews"
	ErrSearchQueryRequired = "Search query required"
	ErrBooksAPIUnavailable = "Failed to connect to books API"
	ErrBooksAPIMalformed   = "Failed to process book data"
	ErrRatingRequired      = "Rating and comment are required"
)
