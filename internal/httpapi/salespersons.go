package httpapi

import (
	"net/http"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/services"
	apperrors "enquirycrm/pkg/errors"
)

func (s *Server) mountSalesPersons() {
	base := apiPrefix + "/sales-persons"
	s.private(http.MethodGet, base, s.listSalesPersons)
	s.private(http.MethodPost, base, s.createSalesPerson)
	s.private(http.MethodGet, base+"/available", s.availableSalesPersons)
	s.private(http.MethodGet, base+"/least-enquiries", s.leastLoadedSalesPerson)
	s.private(http.MethodGet, base+"/search", s.searchSalesPersons)
	s.private(http.MethodGet, base+"/count/total", s.countSalesPersons)
	s.private(http.MethodGet, base+"/count/available", s.countAvailableSalesPersons)
	s.private(http.MethodGet, base+"/{id}", s.getSalesPerson)
	s.private(http.MethodPut, base+"/{id}", s.updateSalesPerson)
	s.private(http.MethodDelete, base+"/{id}", s.deleteSalesPerson)
	s.private(http.MethodPut, base+"/{id}/availability", s.setSalesPersonAvailability)
}

func writeSalesPerson(w http.ResponseWriter, r *http.Request, status int, sp *domain.SalesPerson) error {
	return writeJSON(w, r, status, newSalesPersonView(*sp))
}

func (s *Server) listSalesPersons(w http.ResponseWriter, r *http.Request) error {
	p, err := pageRequest(r, listPageSize, nil)
	if err != nil {
		return err
	}
	page, err := s.svc.SalesPersons.List(r.Context(), p)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, salesPersonPage(page))
}

func (s *Server) searchSalesPersons(w http.ResponseWriter, r *http.Request) error {
	p, err := pageRequest(r, searchPageSize, nil)
	if err != nil {
		return err
	}
	page, err := s.svc.SalesPersons.Search(r.Context(), r.URL.Query().Get("searchTerm"), p)
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, salesPersonPage(page))
}

func (s *Server) createSalesPerson(w http.ResponseWriter, r *http.Request) error {
	var in services.SalesPersonInput
	if err := decode(r, &in); err != nil {
		return err
	}
	sp, err := s.svc.SalesPersons.Create(r.Context(), in)
	if err != nil {
		return err
	}
	return writeSalesPerson(w, r, http.StatusCreated, sp)
}

func (s *Server) getSalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	sp, err := s.svc.SalesPersons.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return writeSalesPerson(w, r, http.StatusOK, sp)
}

func (s *Server) updateSalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	var in services.SalesPersonInput
	if err := decode(r, &in); err != nil {
		return err
	}
	sp, err := s.svc.SalesPersons.Update(r.Context(), id, in)
	if err != nil {
		return err
	}
	return writeSalesPerson(w, r, http.StatusOK, sp)
}

func (s *Server) deleteSalesPerson(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	if err := s.svc.SalesPersons.Delete(r.Context(), id); err != nil {
		return err
	}
	return noContent(w)
}

func (s *Server) setSalesPersonAvailability(w http.ResponseWriter, r *http.Request) error {
	id, err := s.pathID(r, "id")
	if err != nil {
		return err
	}
	if r.URL.Query().Get("available") == "" {
		return apperrors.Validation("available is required")
	}
	available, err := queryBool(r, "available", false)
	if err != nil {
		return err
	}
	sp, err := s.svc.SalesPersons.SetAvailability(r.Context(), id, available)
	if err != nil {
		return err
	}
	return writeSalesPerson(w, r, http.StatusOK, sp)
}

func (s *Server) availableSalesPersons(w http.ResponseWriter, r *http.Request) error {
	rows, err := s.svc.SalesPersons.Available(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, r, http.StatusOK, salesPersonViews(rows))
}

func (s *Server) leastLoadedSalesPerson(w http.ResponseWriter, r *http.Request) error {
	sp, err := s.svc.Assignment.LeastLoaded(r.Context())
	if err != nil {
		return err
	}
	return writeSalesPerson(w, r, http.StatusOK, sp)
}

func (s *Server) countSalesPersons(w http.ResponseWriter, r *http.Request) error {
	n, err := s.svc.SalesPersons.CountTotal(r.Context())
	return writeCount(w, r, n, err)
}

func (s *Server) countAvailableSalesPersons(w http.ResponseWriter, r *http.Request) error {
	n, err := s.svc.SalesPersons.CountAvailable(r.Context())
	return writeCount(w, r, n, err)
}
