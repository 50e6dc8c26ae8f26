package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	// users
	RouteUsers = RouteApiV1 + "/users"
	RouteUser  = RouteUsers + "/:user_id"

	// files
	RouteFiles        = RouteApiV1 + "/files"
	RouteFilesStats   = RouteFiles + "/stats"
	RouteFilesRefresh = RouteFiles + "/refresh"
	RouteFile         = RouteFiles + "/:file_id"
	RouteFileDownload = RouteFile + "/download"

	// messages
	RouteMessages        = RouteApiV1 + "/messages"
	RouteMessagesRefresh = RouteMessages + "/refresh"

	// upload sessions
	RouteUploads          = RouteApiV1 + "/uploads"
	RouteUploadsCompleted = RouteUploads + "/completed"
	RouteUpload           = RouteUploads + "/:upload_id"
	RouteUploadCancel     = RouteUpload + "/cancel"
	RouteUploadRetry      = RouteUpload + "/retry"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
