package dto

// フォーム送信。必須チェックはサービス側でリダイレクトメッセージに変換する
type CredentialsInput struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
