package common

// メッセージの絵文字定数
const (
	ErrorIcon    = "❌"
	SuccessIcon  = "✅"
	WarningIcon  = "⚠️"
	SearchIcon   = "🔍"
	InfoIcon     = "📋"
	ProcessIcon  = "🔄"
	PartyIcon    = "🎉"
	DownloadIcon = "📦"
	UploadIcon   = "⬆️"
	DeleteIcon   = "🗑️"
)

// エラーメッセージフォーマット定数
const (
	// 一覧取得エラー
	ListErrorFormat = "%s %s一覧の取得に失敗: %w"

	// オブジェクト転送エラー
	DownloadErrorFormat = "%s %s のダウンロードに失敗: %w"
	UploadErrorFormat   = "%s %s のアップロードに失敗: %w"
	DeleteErrorFormat   = "%s %s の削除に失敗: %w"

	// その他の操作エラー
	CreateErrorFormat    = "%s %s の作成に失敗: %w"
	TransformErrorFormat = "%s %s の変換に失敗: %w"
)
