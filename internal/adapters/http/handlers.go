package httpadapter

import (
	"net/http"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	f := ports.ServiceFilter{ServiceID: q.str("serviceId")}
	if q.err != nil {
		s.fail(w, r, q.err)
		return
	}
	d, err := s.svc.Dashboard.Get(r.Context(), f)
	reply(s, w, r, d, err)
}

func (s *Server) listControls(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	f := ports.ControlFilter{
		ServiceID:  q.str("serviceId"),
		Status:     enum(&q, "status", domain.ControlStatuses),
		Priority:   enum(&q, "priority", domain.Priorities),
		Type:       enum(&q, "controlType", domain.ControlTypes),
		IncidentID: q.id("incidentId"),
	}
	if q.err != nil {
		s.fail(w, r, q.err)
		return
	}
	out, err := s.svc.Controls.List(r.Context(), f)
	reply(s, w, r, out, err)
}

func (s *Server) getControl(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.svc.Controls.Get(r.Context(), id)
	reply(s, w, r, c, err)
}

func (s *Server) listWorkItems(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	f := ports.WorkItemFilter{
		ServiceID:  q.str("serviceId"),
		Status:     enum(&q, "status", domain.WorkStatuses),
		Type:       enum(&q, "workType", domain.WorkTypes),
		ControlID:  q.id("controlId"),
		IncidentID: q.id("incidentId"),
	}
	if q.err != nil {
		s.fail(w, r, q.err)
		return
	}
	out, err := s.svc.WorkItems.List(r.Context(), f)
	reply(s, w, r, out, err)
}

func (s *Server) getWorkItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	item, err := s.svc.WorkItems.Get(r.Context(), id)
	reply(s, w, r, item, err)
}

func (s *Server) getTrends(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	f := ports.ReadinessFilter{ServiceID: q.str("serviceId"), DaysBack: q.num("daysBack")}
	if q.err != nil {
		s.fail(w, r, q.err)
		return
	}
	out, err := s.svc.Readiness.Trends(r.Context(), f)
	reply(s, w, r, out, err)
}

func (s *Server) searchEvidence(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	f := ports.EvidenceFilter{
		ServiceID: q.str("serviceId"),
		Type:      enum(&q, "evidenceType", domain.EvidenceTypes),
		Tags:      q.list("tags"),
		FreshOnly: q.flag("freshOnly"),
	}
	if q.err != nil {
		s.fail(w, r, q.err)
		return
	}
	out, err := s.svc.Evidence.Search(r.Context(), f)
	reply(s, w, r, out, err)
}

func (s *Server) getEvidence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	e, err := s.svc.Evidence.Get(r.Context(), id)
	reply(s, w, r, e, err)
}

func (s *Server) listClaims(w http.ResponseWriter, r *http.Request) {
	q := query{r: r}
	f := ports.ClaimFilter{
		ServiceID: q.str("serviceId"),
		Section:   q.str("section"),
		Status:    enum(&q, "status", domain.ClaimStatuses),
	}
	if q.err != nil {
		s.fail(w, r, q.err)
		return
	}
	out, err := s.svc.Claims.List(r.Context(), f)
	reply(s, w, r, out, err)
}

func (s *Server) getClaim(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.svc.Claims.Get(r.Context(), id)
	reply(s, w, r, c, err)
}
