package station

var RoundKm = roundKm
