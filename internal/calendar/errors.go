package calendar

import (
	"errors"
	"fmt"
)

var ErrNothingToReconcile = errors.New("no feeding record awaiting reconciliation")

// ValidationError: detectado en el cliente, bloquea la acción antes de llamar al store.
type ValidationError struct {
	Op  Op
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// RemoteError: el store rechazó o falló la operación. El estado local no cambió.
type RemoteError struct {
	Op  Op
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *RemoteError) Unwrap() error { return e.Err }

// Op identifica una acción del usuario; define los textos de éxito/fallo.
type Op string

const (
	OpLoad              Op = "load"
	OpReconcile         Op = "reconcile"
	OpToggleConsumption Op = "toggle_consumption"
	OpCreateFeeding     Op = "create_feeding"
	OpUpdateFeeding     Op = "update_feeding"
	OpDeleteFeeding     Op = "delete_feeding"
	OpCreateFeedType    Op = "create_feed_type"
	OpCreateMaintenance Op = "create_maintenance"
	OpUpdateMaintenance Op = "update_maintenance"
	OpDeleteMaintenance Op = "delete_maintenance"
	OpCreatePet         Op = "create_pet"
	OpUpdatePet         Op = "update_pet"
	OpDeletePet         Op = "delete_pet"
	OpCreateWeight      Op = "create_weight"
	OpCreateSchedule    Op = "create_schedule"
	OpUpdateSchedule    Op = "update_schedule"
	OpToggleSchedule    Op = "toggle_schedule"
	OpDeleteSchedule    Op = "delete_schedule"
)

var opTexts = map[Op][2]string{
	OpLoad:              {"Data loaded", "Failed to load data"},
	OpReconcile:         {"Consumption recorded", "Failed to record consumption"},
	OpToggleConsumption: {"Consumption updated", "Failed to update consumption"},
	OpCreateFeeding:     {"Feeding recorded", "Failed to record feeding"},
	OpUpdateFeeding:     {"Feeding record updated", "Failed to update feeding record"},
	OpDeleteFeeding:     {"Feeding record deleted", "Failed to delete feeding record"},
	OpCreateFeedType:    {"Feed type added", "Failed to add feed type"},
	OpCreateMaintenance: {"Maintenance recorded", "Failed to record maintenance"},
	OpUpdateMaintenance: {"Maintenance record updated", "Failed to update maintenance record"},
	OpDeleteMaintenance: {"Maintenance record deleted", "Failed to delete maintenance record"},
	OpCreatePet:         {"Pet added", "Failed to add pet"},
	OpUpdatePet:         {"Pet updated", "Failed to update pet"},
	OpDeletePet:         {"Pet deleted", "Failed to delete pet"},
	OpCreateWeight:      {"Weight recorded", "Failed to record weight"},
	OpCreateSchedule:    {"Schedule added", "Failed to add schedule"},
	OpUpdateSchedule:    {"Schedule updated", "Failed to update schedule"},
	OpToggleSchedule:    {"Schedule updated", "Failed to update schedule"},
	OpDeleteSchedule:    {"Schedule deleted", "Failed to delete schedule"},
}

type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageSuccess:
		return "success"
	case MessageError:
		return "error"
	default:
		return "none"
	}
}

// Message es la notificación transitoria de la última acción.
type Message struct {
	Kind MessageKind
	Text string
}

func successMessage(op Op) Message {
	return Message{Kind: MessageSuccess, Text: opTexts[op][0]}
}

func failureMessage(op Op) Message {
	return Message{Kind: MessageError, Text: opTexts[op][1]}
}
