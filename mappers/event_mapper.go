// file: mappers/event_mapper.go
package mappers

import (
	"github.com/syedmaroofhussain3-blip/university-hub/dto"
	"github.com/syedmaroofhussain3-blip/university-hub/models"
	"github.com/syedmaroofhussain3-blip/university-hub/services"
)

func MapCreateReqToModel(req dto.CreateEventReq, createdBy uint32) models.Event {
	return models.Event{
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime,
		Location:         req.Location,
		Capacity:         req.Capacity,
		CoverImage:       req.CoverImage,
		ClubName:         req.ClubName,
		CreatedBy:        createdBy,
		RegistrationType: models.RegistrationType(req.RegistrationType),
		MinTeamSize:      req.MinTeamSize,
		MaxTeamSize:      req.MaxTeamSize,
		IsPaid:           req.IsPaid,
		FeeAmount:        req.FeeAmount,
		PaymentHandle:    req.PaymentHandle,
		PaymentQRImage:   req.PaymentQRImage,
	}
}

func MapModelToItemResp(ev models.Event) dto.EventItemResp {
	return dto.EventItemResp{
		ID:               ev.ID,
		Title:            ev.Title,
		StartTime:        ev.StartTime.Format("2006-01-02 15:04:05"),
		Location:         ev.Location,
		ClubName:         ev.ClubName,
		CoverImage:       ev.CoverImage,
		Capacity:         ev.Capacity,
		RegistrationType: string(ev.RegistrationType),
		IsPaid:           ev.IsPaid,
		FeeAmount:        ev.FeeAmount,
	}
}

func MapModelToDetailResp(ev models.Event, stats *services.EventStats) dto.EventDetailResp {
	resp := dto.EventDetailResp{
		EventItemResp:  MapModelToItemResp(ev),
		Description:    ev.Description,
		MinTeamSize:    ev.MinTeamSize,
		MaxTeamSize:    ev.MaxTeamSize,
		PaymentHandle:  ev.PaymentHandle,
		PaymentQRImage: ev.PaymentQRImage,
		CreatedBy:      ev.CreatedBy,
	}
	if stats != nil {
		resp.Stats = stats
	}
	return resp
}
