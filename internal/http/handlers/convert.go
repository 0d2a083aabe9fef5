package handlers

import "rider-dispatch/internal/domain"

func (p pointDTO) toDomain() domain.Point {
	var out domain.Point
	if p.Lat != nil {
		out.Lat = *p.Lat
	}
	if p.Lng != nil {
		out.Lng = *p.Lng
	}
	return out
}

func pointToView(p domain.Point) pointView {
	return pointView{Lat: p.Lat, Lng: p.Lng}
}
