package stub

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/models"
)

// Geography.

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	respondData(w, http.StatusOK, s.geography.States, "")
}

func (s *Server) handleMunicipalities(w http.ResponseWriter, r *http.Request) {
	stateID := queryID(r, "stateId")
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Municipality{}
	for _, m := range s.geography.Municipalities {
		if stateID == 0 || m.StateID == stateID {
			out = append(out, m)
		}
	}
	respondData(w, http.StatusOK, out, "")
}

func (s *Server) handleLocalities(w http.ResponseWriter, r *http.Request) {
	municipalityID := queryID(r, "municipalityId")
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Locality{}
	for _, l := range s.geography.Localities {
		if municipalityID == 0 || l.MunicipalityID == municipalityID {
			out = append(out, l)
		}
	}
	respondData(w, http.StatusOK, out, "")
}

// Catalog resources. yacht-categories, yacht-types, tour-types, club-types,
// and roles all share the CatalogEntry shape.

func (s *Server) listCatalog(w http.ResponseWriter, r *http.Request, resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append([]models.CatalogEntry{}, s.catalogs[resource]...)
	respondData(w, http.StatusOK, entries, "")
}

func (s *Server) createCatalog(w http.ResponseWriter, r *http.Request, resource string) {
	var input api.CatalogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "El nombre es obligatorio")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.CatalogEntry{
		ID:   s.id(),
		Name: input.Name,
		Location: models.Location{
			StateID:        input.StateID,
			MunicipalityID: input.MunicipalityID,
			LocalityID:     input.LocalityID,
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.catalogs[resource] = append(s.catalogs[resource], entry)
	respondData(w, http.StatusCreated, entry, "Registro creado")
}

func (s *Server) updateCatalog(w http.ResponseWriter, r *http.Request, resource string) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	var input api.CatalogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" {
		respondError(w, http.StatusUnprocessableEntity, "El nombre es obligatorio")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.catalogs[resource] {
		if entry.ID != id {
			continue
		}
		entry.Name = input.Name
		entry.StateID = input.StateID
		entry.MunicipalityID = input.MunicipalityID
		entry.LocalityID = input.LocalityID
		entry.UpdatedAt = time.Now().UTC()
		s.catalogs[resource][i] = entry
		respondData(w, http.StatusOK, entry, "Registro actualizado")
		return
	}
	respondError(w, http.StatusNotFound, "Registro no encontrado")
}

func (s *Server) deleteCatalog(w http.ResponseWriter, r *http.Request, resource string) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.catalogs[resource]
	for i, entry := range entries {
		if entry.ID == id {
			s.catalogs[resource] = append(entries[:i], entries[i+1:]...)
			respondData(w, http.StatusOK, nil, "Registro eliminado")
			return
		}
	}
	respondError(w, http.StatusNotFound, "Registro no encontrado")
}

func (s *Server) catalogName(resource string, id int64) string {
	for _, entry := range s.catalogs[resource] {
		if entry.ID == id {
			return entry.Name
		}
	}
	return ""
}

// matchesLocation applies the optional geographic query filters.
func matchesLocation(r *http.Request, loc models.Location) bool {
	if id := queryID(r, "stateId"); id != 0 && loc.StateID != id {
		return false
	}
	if id := queryID(r, "municipalityId"); id != 0 && loc.MunicipalityID != id {
		return false
	}
	if id := queryID(r, "localityId"); id != 0 && loc.LocalityID != id {
		return false
	}
	return true
}

// Yachts.

func (s *Server) listYachts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Yacht{}
	for _, y := range s.yachts {
		if id := queryID(r, "categoryId"); id != 0 && y.CategoryID != id {
			continue
		}
		if id := queryID(r, "typeId"); id != 0 && y.TypeID != id {
			continue
		}
		if !matchesLocation(r, y.Location) {
			continue
		}
		out = append(out, *y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondData(w, http.StatusOK, out, "")
}

func (s *Server) createYacht(w http.ResponseWriter, r *http.Request) {
	var input api.YachtInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" || input.CategoryID == 0 {
		respondError(w, http.StatusUnprocessableEntity, "Nombre y categoría son obligatorios")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	y := &models.Yacht{
		ID:          s.id(),
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		TypeID:      input.TypeID,
		Capacity:    input.Capacity,
		PricePerDay: input.PricePerDay,
		Address:     input.Address,
		Location: models.Location{
			StateID:        input.StateID,
			MunicipalityID: input.MunicipalityID,
			LocalityID:     input.LocalityID,
		},
		Images:       s.storeImages(nil, input.Images, nil),
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
		CategoryName: s.catalogName("yacht-categories", input.CategoryID),
		TypeName:     s.catalogName("yacht-types", input.TypeID),
	}
	s.yachts[y.ID] = y
	respondData(w, http.StatusCreated, y, "Yate creado")
}

func (s *Server) updateYacht(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	var input api.YachtInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	y, found := s.yachts[id]
	if !found {
		respondError(w, http.StatusNotFound, "Yate no encontrado")
		return
	}
	y.Name = input.Name
	y.Description = input.Description
	y.CategoryID = input.CategoryID
	y.TypeID = input.TypeID
	y.Capacity = input.Capacity
	y.PricePerDay = input.PricePerDay
	y.Address = input.Address
	y.StateID = input.StateID
	y.MunicipalityID = input.MunicipalityID
	y.LocalityID = input.LocalityID
	y.Images = s.storeImages(y.Images, input.Images, input.RemoveImageIDs)
	y.UpdatedAt = time.Now().UTC()
	y.CategoryName = s.catalogName("yacht-categories", y.CategoryID)
	y.TypeName = s.catalogName("yacht-types", y.TypeID)
	respondData(w, http.StatusOK, y, "Yate actualizado")
}

func (s *Server) deleteYacht(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.yachts[id]; !found {
		respondError(w, http.StatusNotFound, "Yate no encontrado")
		return
	}
	delete(s.yachts, id)
	respondData(w, http.StatusOK, nil, "Yate eliminado")
}

// Tours.

func (s *Server) listTours(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Tour{}
	for _, t := range s.tours {
		if id := queryID(r, "typeId"); id != 0 && t.TypeID != id {
			continue
		}
		if status := r.URL.Query().Get("status"); status != "" && t.Status != status {
			continue
		}
		if !matchesLocation(r, t.Location) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondData(w, http.StatusOK, out, "")
}

func (s *Server) createTour(w http.ResponseWriter, r *http.Request) {
	var input api.TourInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" || input.TypeID == 0 {
		respondError(w, http.StatusUnprocessableEntity, "Nombre y tipo son obligatorios")
		return
	}
	if input.Status == "" {
		input.Status = models.DefaultTourStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &models.Tour{
		ID:          s.id(),
		Name:        input.Name,
		Description: input.Description,
		TypeID:      input.TypeID,
		Capacity:    input.Capacity,
		Price:       input.Price,
		Status:      input.Status,
		Location: models.Location{
			StateID:        input.StateID,
			MunicipalityID: input.MunicipalityID,
			LocalityID:     input.LocalityID,
		},
		Images:    s.storeImages(nil, input.Images, nil),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		TypeName:  s.catalogName("tour-types", input.TypeID),
	}
	s.tours[t.ID] = t
	respondData(w, http.StatusCreated, t, "Tour creado")
}

func (s *Server) updateTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	var input api.TourInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, found := s.tours[id]
	if !found {
		respondError(w, http.StatusNotFound, "Tour no encontrado")
		return
	}
	t.Name = input.Name
	t.Description = input.Description
	t.TypeID = input.TypeID
	t.Capacity = input.Capacity
	t.Price = input.Price
	if input.Status != "" {
		t.Status = input.Status
	}
	t.StateID = input.StateID
	t.MunicipalityID = input.MunicipalityID
	t.LocalityID = input.LocalityID
	t.Images = s.storeImages(t.Images, input.Images, input.RemoveImageIDs)
	t.UpdatedAt = time.Now().UTC()
	t.TypeName = s.catalogName("tour-types", t.TypeID)
	respondData(w, http.StatusOK, t, "Tour actualizado")
}

func (s *Server) deleteTour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.tours[id]; !found {
		respondError(w, http.StatusNotFound, "Tour no encontrado")
		return
	}
	delete(s.tours, id)
	respondData(w, http.StatusOK, nil, "Tour eliminado")
}

// Clubs.

func (s *Server) listClubs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Club{}
	for _, c := range s.clubs {
		if id := queryID(r, "typeId"); id != 0 && c.TypeID != id {
			continue
		}
		if !matchesLocation(r, c.Location) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondData(w, http.StatusOK, out, "")
}

func (s *Server) createClub(w http.ResponseWriter, r *http.Request) {
	var input api.ClubInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" || input.TypeID == 0 {
		respondError(w, http.StatusUnprocessableEntity, "Nombre y tipo son obligatorios")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Club{
		ID:          s.id(),
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		TypeID:      input.TypeID,
		Capacity:    input.Capacity,
		Location: models.Location{
			StateID:        input.StateID,
			MunicipalityID: input.MunicipalityID,
			LocalityID:     input.LocalityID,
		},
		Images:    s.storeImages(nil, input.Images, nil),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		TypeName:  s.catalogName("club-types", input.TypeID),
	}
	s.clubs[c.ID] = c
	respondData(w, http.StatusCreated, c, "Club creado")
}

func (s *Server) updateClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	var input api.ClubInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, found := s.clubs[id]
	if !found {
		respondError(w, http.StatusNotFound, "Club no encontrado")
		return
	}
	c.Name = input.Name
	c.Description = input.Description
	c.Address = input.Address
	c.TypeID = input.TypeID
	c.Capacity = input.Capacity
	c.StateID = input.StateID
	c.MunicipalityID = input.MunicipalityID
	c.LocalityID = input.LocalityID
	c.Images = s.storeImages(c.Images, input.Images, input.RemoveImageIDs)
	c.UpdatedAt = time.Now().UTC()
	c.TypeName = s.catalogName("club-types", c.TypeID)
	respondData(w, http.StatusOK, c, "Club actualizado")
}

func (s *Server) deleteClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.clubs[id]; !found {
		respondError(w, http.StatusNotFound, "Club no encontrado")
		return
	}
	delete(s.clubs, id)
	respondData(w, http.StatusOK, nil, "Club eliminado")
}

// Users.

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.User{}
	for _, u := range s.users {
		if id := queryID(r, "roleId"); id != 0 && u.RoleID != id {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondData(w, http.StatusOK, out, "")
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var input api.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Name == "" || input.Email == "" || input.Password == "" {
		respondError(w, http.StatusUnprocessableEntity, "Nombre, correo y contraseña son obligatorios")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == input.Email {
			respondError(w, http.StatusConflict, "El correo ya está registrado")
			return
		}
	}

	u := &models.User{
		ID:        s.id(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		RoleID:    input.RoleID,
		RoleName:  s.catalogName("roles", input.RoleID),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.passwords[u.Email] = input.Password
	respondData(w, http.StatusCreated, u, "Usuario creado")
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	var input api.UserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, found := s.users[id]
	if !found {
		respondError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if input.Email != u.Email {
		delete(s.passwords, u.Email)
	}
	u.Name = input.Name
	u.Email = input.Email
	u.Phone = input.Phone
	u.RoleID = input.RoleID
	u.RoleName = s.catalogName("roles", u.RoleID)
	u.UpdatedAt = time.Now().UTC()
	if input.Password != "" {
		s.passwords[u.Email] = input.Password
	}
	respondData(w, http.StatusOK, u, "Usuario actualizado")
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.users[id]
	if !found {
		respondError(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	delete(s.passwords, u.Email)
	delete(s.users, id)
	respondData(w, http.StatusOK, nil, "Usuario eliminado")
}

// Reservations.

func (s *Server) listReservations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Reservation{}
	for _, res := range s.reservations {
		if status := r.URL.Query().Get("status"); status != "" && string(res.Status) != status {
			continue
		}
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	respondData(w, http.StatusOK, out, "")
}

func (s *Server) resourceName(res *models.Reservation) string {
	switch {
	case res.YachtID != 0:
		if y, ok := s.yachts[res.YachtID]; ok {
			return y.Name
		}
	case res.TourID != 0:
		if t, ok := s.tours[res.TourID]; ok {
			return t.Name
		}
	case res.ClubID != 0:
		if c, ok := s.clubs[res.ClubID]; ok {
			return c.Name
		}
	}
	return ""
}

func (s *Server) createReservation(w http.ResponseWriter, r *http.Request) {
	var input api.ReservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.CustomerName == "" || input.StartDate == "" {
		respondError(w, http.StatusUnprocessableEntity, "Cliente y fecha de inicio son obligatorios")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &models.Reservation{
		ID:            s.id(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		YachtID:       input.YachtID,
		TourID:        input.TourID,
		ClubID:        input.ClubID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Guests:        input.Guests,
		Total:         input.Total,
		Status:        models.ReservationPending,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	res.ResourceName = s.resourceName(res)
	s.reservations[res.ID] = res
	respondData(w, http.StatusCreated, res, "Reservación creada")
}

// reservationPatch accepts either editable fields or a bare status move.
type reservationPatch struct {
	api.ReservationInput
	Status *models.ReservationStatus `json:"status"`
}

func (s *Server) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	var patch reservationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, found := s.reservations[id]
	if !found {
		respondError(w, http.StatusNotFound, "Reservación no encontrada")
		return
	}

	if patch.Status != nil {
		if !patch.Status.Valid() || !res.Status.CanTransition(*patch.Status) {
			respondError(w, http.StatusUnprocessableEntity, "Transición de estado no permitida")
			return
		}
		res.Status = *patch.Status
		res.UpdatedAt = time.Now().UTC()
		respondData(w, http.StatusOK, res, "Estado actualizado")
		return
	}

	if patch.CustomerName == "" || patch.StartDate == "" {
		respondError(w, http.StatusUnprocessableEntity, "Cliente y fecha de inicio son obligatorios")
		return
	}
	res.CustomerName = patch.CustomerName
	res.CustomerEmail = patch.CustomerEmail
	res.YachtID = patch.YachtID
	res.TourID = patch.TourID
	res.ClubID = patch.ClubID
	res.StartDate = patch.StartDate
	res.EndDate = patch.EndDate
	res.Guests = patch.Guests
	res.Total = patch.Total
	res.ResourceName = s.resourceName(res)
	res.UpdatedAt = time.Now().UTC()
	respondData(w, http.StatusOK, res, "Reservación actualizada")
}

func (s *Server) deleteReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Identificador inválido")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.reservations[id]; !found {
		respondError(w, http.StatusNotFound, "Reservación no encontrada")
		return
	}
	delete(s.reservations, id)
	respondData(w, http.StatusOK, nil, "Reservación eliminada")
}
