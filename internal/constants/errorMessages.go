package constants

const (
	StatusError           = "Error"
	StatusNotFound        = "Record not found"
	StatusInsertFailed    = "Unable to insert"
	StatusUpdateFailed    = "Unable to update"
	StatusDeleteFailed    = "Unable to delete"
	StatusComponentLogged = "Maintenance visit logged"
)

const (
	MsgComponentNotFound    = "Aircraft component not found"
	MsgAircraftNotFound     = "Aircraft not found"
	MsgMemberNotFound       = "Member not found"
	MsgIntervalHoursMissing = "interval_hours is required for HOURS and BOTH interval types"
	MsgIntervalDaysMissing  = "interval_days is required for CALENDAR and BOTH interval types"
	MsgVisitDateRequired    = "visit_date is required"
	MsgInvalidExtension     = "extension percent must be greater than zero"
)
