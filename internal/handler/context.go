package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	ServiceOfferCtx ContextKey = "serviceOffer"
	StaffCtx        ContextKey = "staff"
	ScheduleDayCtx  ContextKey = "scheduleDay"
	ReviewCtx       ContextKey = "review"
)
