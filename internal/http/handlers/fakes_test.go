package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"kanban_backend/internal/domain"
)

type pair [2]int64

// world is an in-memory stand-in for the database behind every store.
type world struct {
	mu  sync.Mutex
	seq int64

	users         map[int64]*domain.User
	workspaces    map[int64]*domain.Workspace
	wsMembers     map[pair]domain.Role // workspace, user
	boards        map[int64]*domain.Board
	boardMembers  map[pair]domain.Role // board, user
	lists         map[int64]*domain.List
	cards         map[int64]*domain.Card
	labels        map[int64]*domain.Label
	cardLabels    map[pair]bool // card, label
	assignees     map[pair]bool // card, user
	activities    []domain.Activity
	notifications []domain.Notification
}

func newWorld() *world {
	return &world{
		users:        map[int64]*domain.User{},
		workspaces:   map[int64]*domain.Workspace{},
		wsMembers:    map[pair]domain.Role{},
		boards:       map[int64]*domain.Board{},
		boardMembers: map[pair]domain.Role{},
		lists:        map[int64]*domain.List{},
		cards:        map[int64]*domain.Card{},
		labels:       map[int64]*domain.Label{},
		cardLabels:   map[pair]bool{},
		assignees:    map[pair]bool{},
	}
}

func (w *world) next() int64 {
	w.seq++
	return w.seq
}

// seeding helpers; callers hold no lock

func (w *world) addUser(name string) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next()
	w.users[id] = &domain.User{ID: id, Email: strings.ToLower(name) + "@example.com", Name: name}
	return id
}

func (w *world) addWorkspace(owner int64, name string) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next()
	w.workspaces[id] = &domain.Workspace{ID: id, Name: name, OwnerID: owner}
	return id
}

func (w *world) addBoard(wsID, creator int64, name string) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next()
	w.boards[id] = &domain.Board{ID: id, WorkspaceID: wsID, Name: name, CreatedBy: creator}
	return id
}

func (w *world) addList(boardID int64, title string) int64 {
	l := &domain.List{BoardID: boardID, Title: title}
	_ = fakeLists{w}.Create(context.Background(), l)
	return l.ID
}

func (w *world) addCard(listID int64, title string) int64 {
	w.mu.Lock()
	l := w.lists[listID]
	w.mu.Unlock()
	c := &domain.Card{ListID: listID, BoardID: l.BoardID, Title: title}
	_ = fakeCards{w}.Create(context.Background(), c)
	return c.ID
}

func (w *world) addLabel(boardID int64, name string) int64 {
	l := &domain.Label{BoardID: boardID, Name: name, Color: "#FF0000"}
	_ = fakeLabels{w}.Create(context.Background(), l)
	return l.ID
}

func (w *world) activityTypes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for _, a := range w.activities {
		out = append(out, a.Type)
	}
	return out
}

// access

type fakeAccess struct{ *world }

func (a fakeAccess) owns(userID, boardID int64) (bool, bool) {
	b, ok := a.boards[boardID]
	if !ok {
		return false, false
	}
	if b.CreatedBy == userID {
		return true, true
	}
	ws, ok := a.workspaces[b.WorkspaceID]
	return ok && ws.OwnerID == userID, true
}

func (a fakeAccess) HasAccessToBoard(_ context.Context, userID, boardID int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	owner, exists := a.owns(userID, boardID)
	if !exists {
		return false, nil
	}
	_, member := a.boardMembers[pair{boardID, userID}]
	return owner || member, nil
}

func (a fakeAccess) CanEditBoard(_ context.Context, userID, boardID int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	owner, exists := a.owns(userID, boardID)
	if !exists {
		return false, nil
	}
	role, member := a.boardMembers[pair{boardID, userID}]
	return owner || (member && role.CanEdit()), nil
}

func (a fakeAccess) CanDeleteBoard(_ context.Context, userID, boardID int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	owner, _ := a.owns(userID, boardID)
	return owner, nil
}

func (a fakeAccess) BoardRole(_ context.Context, userID, boardID int64) (domain.Role, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	owner, exists := a.owns(userID, boardID)
	if !exists {
		return "", false, nil
	}
	if owner {
		return domain.RoleAdmin, true, nil
	}
	role, member := a.boardMembers[pair{boardID, userID}]
	return role, member, nil
}

func (a fakeAccess) IsWorkspaceOwner(_ context.Context, userID, wsID int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ws, ok := a.workspaces[wsID]
	return ok && ws.OwnerID == userID, nil
}

func (a fakeAccess) WorkspaceRole(_ context.Context, userID, wsID int64) (domain.Role, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ws, ok := a.workspaces[wsID]
	if !ok {
		return "", false, nil
	}
	if ws.OwnerID == userID {
		return domain.RoleAdmin, true, nil
	}
	role, ok := a.wsMembers[pair{wsID, userID}]
	return role, ok, nil
}

func (a fakeAccess) HasWorkspaceAccess(ctx context.Context, userID, wsID int64) (bool, error) {
	_, ok, err := a.WorkspaceRole(ctx, userID, wsID)
	return ok, err
}

func (a fakeAccess) CanManageWorkspace(ctx context.Context, userID, wsID int64) (bool, error) {
	role, ok, err := a.WorkspaceRole(ctx, userID, wsID)
	return ok && role == domain.RoleAdmin, err
}

// workspaces

type fakeWorkspaces struct {
	*world
	deleteErr error
}

func (f *fakeWorkspaces) Create(_ context.Context, ws *domain.Workspace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws.ID = f.next()
	ws.CreatedAt = time.Now()
	cp := *ws
	f.workspaces[ws.ID] = &cp
	return nil
}

func (f *fakeWorkspaces) GetByID(_ context.Context, id int64) (*domain.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws, ok := f.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ws
	return &cp, nil
}

func (f *fakeWorkspaces) ListForUser(_ context.Context, userID int64) ([]domain.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.Workspace{}
	for id, ws := range f.workspaces {
		if _, member := f.wsMembers[pair{id, userID}]; ws.OwnerID == userID || member {
			res = append(res, *ws)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (f *fakeWorkspaces) Update(_ context.Context, id int64, name, description string) (*domain.Workspace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws, ok := f.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ws.Name, ws.Description = name, description
	cp := *ws
	return &cp, nil
}

func (f *fakeWorkspaces) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.workspaces[id]; !ok {
		return domain.ErrNotFound
	}
	for k := range f.wsMembers {
		if k[0] == id {
			delete(f.wsMembers, k)
		}
	}
	delete(f.workspaces, id)
	return nil
}

func (f *fakeWorkspaces) AddMember(_ context.Context, m *domain.WorkspaceMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[m.UserID]; !ok {
		return domain.Invalid("user_id", "User does not exist")
	}
	f.wsMembers[pair{m.WorkspaceID, m.UserID}] = m.Role
	return nil
}

func (f *fakeWorkspaces) RemoveMember(_ context.Context, wsID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wsMembers[pair{wsID, userID}]; !ok {
		return domain.ErrNotFound
	}
	delete(f.wsMembers, pair{wsID, userID})
	return nil
}

func (f *fakeWorkspaces) ListMembers(_ context.Context, wsID int64) ([]domain.WorkspaceMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.WorkspaceMember{}
	for k, role := range f.wsMembers {
		if k[0] == wsID {
			res = append(res, domain.WorkspaceMember{WorkspaceID: wsID, UserID: k[1], Role: role})
		}
	}
	return res, nil
}

// boards

type fakeBoards struct{ *world }

func (f fakeBoards) Create(_ context.Context, b *domain.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.next()
	cp := *b
	f.boards[b.ID] = &cp
	return nil
}

func (f fakeBoards) GetByID(_ context.Context, id int64) (*domain.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f fakeBoards) ListVisible(ctx context.Context, userID, wsID int64) ([]domain.Board, error) {
	f.mu.Lock()
	var ids []int64
	for id, b := range f.boards {
		if b.WorkspaceID == wsID {
			ids = append(ids, id)
		}
	}
	f.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	res := []domain.Board{}
	for _, id := range ids {
		if ok, _ := (fakeAccess{f.world}).HasAccessToBoard(ctx, userID, id); ok {
			b, _ := f.GetByID(ctx, id)
			res = append(res, *b)
		}
	}
	return res, nil
}

func (f fakeBoards) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.boards[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.boards, id)
	return nil
}

func (f fakeBoards) AddMember(_ context.Context, m *domain.BoardMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[m.UserID]; !ok {
		return domain.Invalid("user_id", "User does not exist")
	}
	if _, ok := f.boardMembers[pair{m.BoardID, m.UserID}]; ok {
		return domain.ErrConflict
	}
	f.boardMembers[pair{m.BoardID, m.UserID}] = m.Role
	return nil
}

func (f fakeBoards) SetMember(_ context.Context, m *domain.BoardMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[m.UserID]; !ok {
		return domain.Invalid("user_id", "User does not exist")
	}
	f.boardMembers[pair{m.BoardID, m.UserID}] = m.Role
	return nil
}

func (f fakeBoards) role(boardID, userID int64) (domain.Role, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.boardMembers[pair{boardID, userID}]
	return r, ok
}

// lists

type fakeLists struct{ *world }

func (f fakeLists) Create(_ context.Context, l *domain.List) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.boards[l.BoardID]; !ok {
		return domain.ErrNotFound
	}
	maxPos := 0
	for _, x := range f.lists {
		if x.BoardID == l.BoardID && x.Position > maxPos {
			maxPos = x.Position
		}
	}
	l.ID = f.next()
	l.Position = maxPos + 1
	cp := *l
	f.lists[l.ID] = &cp
	return nil
}

func (f fakeLists) GetByID(_ context.Context, id int64) (*domain.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f fakeLists) ListByBoard(_ context.Context, boardID int64) ([]domain.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.List{}
	for _, l := range f.lists {
		if l.BoardID == boardID {
			res = append(res, *l)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Position < res[j].Position })
	return res, nil
}

func (f fakeLists) Update(_ context.Context, id int64, title string, position *int) (*domain.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	l.Title = title
	if position != nil {
		l.Position = *position
	}
	cp := *l
	return &cp, nil
}

func (f fakeLists) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lists[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.lists, id)
	return nil
}

// cards

type fakeCards struct{ *world }

func (f fakeCards) Create(_ context.Context, c *domain.Card) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.next()
	cp := *c
	f.cards[c.ID] = &cp
	return nil
}

func (f fakeCards) GetByID(_ context.Context, id int64) (*domain.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.BoardID = f.lists[c.ListID].BoardID
	return &cp, nil
}

func (f fakeCards) GetDetails(ctx context.Context, id int64) (*domain.Card, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c.Labels = []domain.Label{}
	for k := range f.cardLabels {
		if k[0] == id {
			c.Labels = append(c.Labels, *f.labels[k[1]])
		}
	}
	c.Assignees = []domain.UserRef{}
	for k := range f.assignees {
		if k[0] == id {
			u := f.users[k[1]]
			c.Assignees = append(c.Assignees, domain.UserRef{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return c, nil
}

func (f fakeCards) ListByBoard(_ context.Context, boardID int64) ([]domain.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.Card{}
	for _, c := range f.cards {
		if f.lists[c.ListID].BoardID == boardID {
			res = append(res, *c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (f fakeCards) Update(ctx context.Context, id int64, p domain.CardPatch) (*domain.Card, error) {
	f.mu.Lock()
	c, ok := f.cards[id]
	if !ok {
		f.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ListID != nil {
		c.ListID = *p.ListID
	}
	switch {
	case p.ClearDue:
		c.DueDate = nil
	case p.DueDate != nil:
		c.DueDate = p.DueDate
	}
	switch {
	case p.ClearPriority:
		c.Priority = nil
	case p.Priority != nil:
		c.Priority = p.Priority
	}
	f.mu.Unlock()
	return f.GetByID(ctx, id)
}

func (f fakeCards) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cards[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.cards, id)
	return nil
}

func (f fakeCards) AddAssignee(_ context.Context, cardID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pair{cardID, userID}
	if f.assignees[k] {
		return false, nil
	}
	f.assignees[k] = true
	return true, nil
}

func (f fakeCards) RemoveAssignee(_ context.Context, cardID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pair{cardID, userID}
	if !f.assignees[k] {
		return domain.ErrNotFound
	}
	delete(f.assignees, k)
	return nil
}

// labels

type fakeLabels struct{ *world }

func (f fakeLabels) Create(_ context.Context, l *domain.Label) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = f.next()
	cp := *l
	f.labels[l.ID] = &cp
	return nil
}

func (f fakeLabels) GetByID(_ context.Context, id int64) (*domain.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.labels[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f fakeLabels) ListByBoard(_ context.Context, boardID int64) ([]domain.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.Label{}
	for _, l := range f.labels {
		if l.BoardID == boardID {
			res = append(res, *l)
		}
	}
	return res, nil
}

func (f fakeLabels) Update(_ context.Context, id int64, name, color string) (*domain.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.labels[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	l.Name, l.Color = name, color
	cp := *l
	return &cp, nil
}

func (f fakeLabels) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.labels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.labels, id)
	return nil
}

func (f fakeLabels) Toggle(_ context.Context, cardID, labelID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pair{cardID, labelID}
	if f.cardLabels[k] {
		delete(f.cardLabels, k)
		return false, nil
	}
	f.cardLabels[k] = true
	return true, nil
}

// activity

type fakeActivity struct{ *world }

func (f fakeActivity) Log(_ context.Context, boardID int64, cardID *int64, userID int64, activityType, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, domain.Activity{
		ID: f.next(), BoardID: boardID, CardID: cardID, UserID: userID, Type: activityType, Description: description,
	})
}

func (f fakeActivity) BoardActivity(_ context.Context, boardID int64, _, _ int) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.Activity{}
	for _, a := range f.activities {
		if a.BoardID == boardID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (f fakeActivity) CardActivity(_ context.Context, cardID int64, _ int) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.Activity{}
	for _, a := range f.activities {
		if a.CardID != nil && *a.CardID == cardID {
			res = append(res, a)
		}
	}
	return res, nil
}

// notifications

type fakeNotifier struct{ *world }

func (f fakeNotifier) Notify(_ context.Context, actorID int64, n *domain.Notification) {
	if n.UserID == actorID {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.next()
	f.notifications = append(f.notifications, *n)
}

func (f fakeNotifier) unread(userID int64) int {
	n := 0
	for _, x := range f.notifications {
		if x.UserID == userID && !x.IsRead {
			n++
		}
	}
	return n
}

func (f fakeNotifier) List(_ context.Context, q domain.NotificationQuery) ([]domain.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res := []domain.Notification{}
	for _, x := range f.notifications {
		if x.UserID == q.UserID && (!q.UnreadOnly || !x.IsRead) {
			res = append(res, x)
		}
	}
	return res, f.unread(q.UserID), nil
}

func (f fakeNotifier) UnreadCount(_ context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread(userID), nil
}

func (f fakeNotifier) MarkAsRead(_ context.Context, id, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications[i].IsRead = true
			return f.unread(userID), nil
		}
	}
	return 0, domain.ErrNotFound
}

func (f fakeNotifier) MarkAllAsRead(_ context.Context, userID int64) (int64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			n++
		}
	}
	return n, f.unread(userID), nil
}

func (f fakeNotifier) Delete(_ context.Context, id, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id && f.notifications[i].UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return f.unread(userID), nil
		}
	}
	return 0, domain.ErrNotFound
}

// search

type fakeSearchStore struct {
	got     domain.SearchQuery
	results []domain.SearchResult
}

func (f *fakeSearchStore) Search(_ context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	f.got = q
	return append([]domain.SearchResult(nil), f.results...), nil
}

// users

type fakeUsers struct{ *world }

func (f fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.users {
		if x.Email == u.Email {
			return domain.ErrConflict
		}
	}
	u.ID = f.next()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.users {
		if x.Email == email {
			cp := *x
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
