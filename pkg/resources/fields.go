package resources

var DeviceFilterableFields = map[string]FilterFieldType{
	"type":    EnumFilterFieldType,
	"status":  EnumFilterFieldType,
	"address": StringFilterFieldType,
	"name":    StringFilterFieldType,
}

var TicketFilterableFields = map[string]FilterFieldType{
	"status":              EnumFilterFieldType,
	"source":              EnumFilterFieldType,
	"incident_id":         NumberFilterFieldType,
	"incident_uuid":       StringFilterFieldType,
	"assigned_to_user_id": NumberFilterFieldType,
	"created_by_user_id":  NumberFilterFieldType,
	"priority":            NumberFilterFieldType,
}

var IncidentFilterableFields = map[string]FilterFieldType{
	"type":     StringFilterFieldType,
	"category": StringFilterFieldType,
	"status":   StringFilterFieldType,
	"city":     StringFilterFieldType,
	"pub_time": DateFilterFieldType,
}
