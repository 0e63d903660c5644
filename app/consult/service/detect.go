package service

import (
	"context"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	common "go-consult/common/models"
	"go-consult/common/log"
)

type DetectStakeholdersReq struct {
	ProjectID int `json:"projectId"`

	common.ControlBy
}

type DetectStakeholdersResp struct {
	Postcode     string              `json:"postcode"`
	Constituency string              `json:"constituency"`
	Council      string              `json:"council"`
	Ward         string              `json:"ward"`
	Parish       string              `json:"parish"`
	Detected     []model.Stakeholder `json:"detected"`
}

// DetectStakeholders walks the civic data chain for a project's site
// coordinate and upserts the political representatives it finds. Each
// stage that fails is logged and skipped; the chain carries on with
// whatever the remaining stages can still resolve. Re-running never
// duplicates a stakeholder.
func DetectStakeholders(ctx context.Context, req DetectStakeholdersReq) (DetectStakeholdersResp, error) {
	var resp DetectStakeholdersResp
	err := log.WithTracer(ctx, PackageName, "detect stakeholders", func(ctx context.Context) error {
		var project model.Project
		if err := consult.GormDB.WithContext(ctx).
			Where("id = ?", req.ProjectID).
			First(&project).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("detect: load project: ", err.Error())
			return err
		}

		// Stage 1: reverse geocode. Offshore points carry on without one.
		pc, found, err := LookupPostcode(ctx, project.Latitude, project.Longitude)
		if err == nil && found {
			resp.Postcode = pc.Postcode
			resp.Constituency = pc.Constituency
		}

		// Stage 2: sitting MP for the constituency.
		if resp.Constituency != "" {
			if mp, ok, err := LookupMP(ctx, resp.Constituency); err == nil && ok {
				s := upsertStakeholder(ctx, model.Stakeholder{
					ProjectID:    req.ProjectID,
					Name:         mp.Name,
					Type:         model.StakeholderTypeMP,
					Party:        mp.Party,
					Area:         mp.Constituency,
					Organization: "House of Commons",
					Source:       model.StakeholderSourceAuto,
					ControlBy:    req.ControlBy,
				})
				if s != nil {
					resp.Detected = append(resp.Detected, *s)
				}
			}
		}

		// Stage 3: administrative boundaries.
		var (
			councilGSS = pc.CouncilCode
			wardName   = pc.AdminWard
		)
		areas, err := LookupAreas(ctx, project.Latitude, project.Longitude)
		if err == nil {
			if council, ok := pickArea(areas, councilTypes); ok {
				resp.Council = council.Name
				if council.GSS != "" {
					councilGSS = council.GSS
				}
			}
			if ward, ok := pickArea(areas, wardTypes); ok {
				resp.Ward = ward.Name
				wardName = ward.Name
			}
			if parish, ok := pickArea(areas, parishTypes); ok {
				resp.Parish = parish.Name
				s := upsertStakeholder(ctx, model.Stakeholder{
					ProjectID:    req.ProjectID,
					Name:         parish.Name + " Parish Council",
					Type:         model.StakeholderTypeParishCouncil,
					Area:         parish.Name,
					Organization: parish.Name + " Parish Council",
					Source:       model.StakeholderSourceAuto,
					ControlBy:    req.ControlBy,
				})
				if s != nil {
					resp.Detected = append(resp.Detected, *s)
				}
			}
		}
		if resp.Ward == "" {
			resp.Ward = wardName
		}

		// Stage 4: ward councillors from the local directory.
		if councilGSS != "" && wardName != "" {
			var councillors []model.Councillor
			err := consult.GormDB.WithContext(ctx).
				Where("council_code = ?", councilGSS).
				Find(&councillors).Error
			if err != nil {
				consult.Logger().WithContext(ctx).Error("detect: load councillors: ", err.Error())
			} else {
				for _, c := range MatchCouncillors(councillors, wardName) {
					s := upsertStakeholder(ctx, model.Stakeholder{
						ProjectID:    req.ProjectID,
						Name:         c.Name,
						Type:         model.StakeholderTypeCouncillor,
						Party:        c.Party,
						Area:         c.Ward,
						Organization: c.CouncilName,
						Email:        c.Email,
						Source:       model.StakeholderSourceAuto,
						ControlBy:    req.ControlBy,
					})
					if s != nil {
						resp.Detected = append(resp.Detected, *s)
					}
				}
			}
		}

		detectionsRun.Add(ctx, 1)
		log.LogAttr(ctx,
			log.Key("detect.postcode").String(resp.Postcode),
			log.Key("detect.ward").String(resp.Ward),
			log.Key("detect.stakeholders").Int(len(resp.Detected)),
		)
		return nil
	})
	return resp, err
}

// upsertStakeholder creates the stakeholder unless a row with the same
// project, name and type already exists; a nil return means it was skipped.
func upsertStakeholder(ctx context.Context, s model.Stakeholder) *model.Stakeholder {
	var existing model.Stakeholder
	db := consult.GormDB.WithContext(ctx).
		Where("project_id = ? and name = ? and type = ?", s.ProjectID, s.Name, s.Type).
		Attrs(s).
		FirstOrCreate(&existing)
	if db.Error != nil {
		consult.Logger().WithContext(ctx).Error("upsert stakeholder: ", db.Error.Error())
		return nil
	}
	if db.RowsAffected == 0 {
		// already present, refresh the detected attributes
		updates := map[string]any{"party": s.Party, "area": s.Area, "organization": s.Organization}
		if s.Email != "" {
			updates["email"] = s.Email
		}
		if err := consult.GormDB.WithContext(ctx).
			Model(&model.Stakeholder{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("refresh stakeholder: ", err.Error())
		}
		return nil
	}
	return &existing
}
