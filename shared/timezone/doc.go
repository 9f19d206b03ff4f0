// Package timezone resolves wall-clock values in the application timezone.
//
// Reservation dates and times of day are entered as local values of the
// room's site. They only become instants once combined with the location
// configured through APP_TIMEZONE:
//
//	day, _ := timezone.Parse("2006-01-02", "2024-03-04")
//	today := timezone.Today()
//
// Use IANA names such as "UTC" or "Europe/Zurich". The location is loaded
// when the package is imported and falls back to UTC.
package timezone
