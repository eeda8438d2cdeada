package sqlinline

const QAdminStats = `--sql 7f3d3178-f14e-4479-911c-947b4241b8e1
select
  (select count(*) from users),
  (select count(*) from users where status = 'pending'),
  (select count(*) from donations where status = 'completed'),
  (select coalesce(sum(amount), 0) from donations where status = 'completed'),
  (select count(*) from newsletter_subscribers where status = 'active'),
  (select count(*) from contact_messages where status = 'new');
`
