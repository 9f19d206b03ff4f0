package di

import (
	blockingService "roombooking/internal/domains/blocking/service"
	exportService "roombooking/internal/domains/export/service"
	reservationService "roombooking/internal/domains/reservation/service"
	roomService "roombooking/internal/domains/room/service"
)

// Engine bundles the booking services for an embedding process.
type Engine struct {
	Rooms        roomService.Room
	Blockings    blockingService.Blocking
	Reservations reservationService.Reservation
	Exports      exportService.Export
}
